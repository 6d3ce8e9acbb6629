package store

// Store runs each operation as one load-modify-save cycle against a Backend.
// No state is kept between calls; every call loads the value fresh.
type Store struct {
	backend Backend
}

// New returns a Store over the given backend.
func New(b Backend) *Store {
	return &Store{backend: b}
}

// Open returns a Store over the JSON file at path.
func Open(path string) *Store {
	return New(NewFileBackend(path))
}

// withLock runs fn under the backend's advisory lock, when it has one.
func (s *Store) withLock(exclusive bool, fn func() error) (err error) {
	l, ok := s.backend.(Locker)
	if !ok {
		return fn()
	}
	unlock, err := l.Lock(exclusive)
	if err != nil {
		return err
	}
	defer func() {
		if uerr := unlock(); uerr != nil && err == nil {
			err = uerr
		}
	}()
	return fn()
}

// read loads the value under a shared lock.
func (s *Store) read() (*Data, error) {
	var d *Data
	err := s.withLock(false, func() error {
		var err error
		d, err = s.backend.Load()
		return err
	})
	return d, err
}

// update loads, applies fn, and saves under an exclusive lock.
// Nothing is saved if fn fails.
func (s *Store) update(fn func(d *Data) error) error {
	return s.withLock(true, func() error {
		d, err := s.backend.Load()
		if err != nil {
			return err
		}
		if err := fn(d); err != nil {
			return err
		}
		return s.backend.Save(d)
	})
}

// resolveIndex maps i onto [0, n). Negative indices count from the end.
func resolveIndex(i, n int) (int, error) {
	pos := i
	if pos < 0 {
		pos += n
	}
	if pos < 0 || pos >= n {
		return 0, &InvalidIndexError{Index: i, Length: n}
	}
	return pos, nil
}

// Load returns the whole store value.
func (s *Store) Load() (*Data, error) {
	return s.read()
}

// AppendIndexed appends value to the end of the indexed list.
func (s *Store) AppendIndexed(value string) error {
	return s.update(func(d *Data) error {
		d.IndexedStorage = append(d.IndexedStorage, value)
		return nil
	})
}

// SetKeyed stores value under key, replacing any previous value.
func (s *Store) SetKeyed(key, value string) error {
	return s.update(func(d *Data) error {
		d.KeyStorage[key] = value
		return nil
	})
}

// RemoveIndexed removes the entry at i, keeping the order of the rest.
func (s *Store) RemoveIndexed(i int) error {
	return s.update(func(d *Data) error {
		pos, err := resolveIndex(i, len(d.IndexedStorage))
		if err != nil {
			return err
		}
		d.IndexedStorage = append(d.IndexedStorage[:pos], d.IndexedStorage[pos+1:]...)
		return nil
	})
}

// RemoveKeyed deletes key from the keyed map.
func (s *Store) RemoveKeyed(key string) error {
	return s.update(func(d *Data) error {
		if _, ok := d.KeyStorage[key]; !ok {
			return &InvalidKeyError{Key: key}
		}
		delete(d.KeyStorage, key)
		return nil
	})
}

// GetIndexed returns the entry at i.
func (s *Store) GetIndexed(i int) (string, error) {
	d, err := s.read()
	if err != nil {
		return "", err
	}
	pos, err := resolveIndex(i, len(d.IndexedStorage))
	if err != nil {
		return "", err
	}
	return d.IndexedStorage[pos], nil
}

// GetKeyed returns the value stored under key.
func (s *Store) GetKeyed(key string) (string, error) {
	d, err := s.read()
	if err != nil {
		return "", err
	}
	v, ok := d.KeyStorage[key]
	if !ok {
		return "", &InvalidKeyError{Key: key}
	}
	return v, nil
}

// Clear resets the collections selected by scope. A full clear does not read
// the existing file, so it also recovers a corrupt store.
func (s *Store) Clear(scope Scope) error {
	if scope == ScopeAll {
		return s.withLock(true, func() error {
			return s.backend.Save(Empty())
		})
	}
	return s.update(func(d *Data) error {
		switch scope {
		case ScopeIndexed:
			d.IndexedStorage = []string{}
		case ScopeKeyed:
			d.KeyStorage = map[string]string{}
		}
		return nil
	})
}
