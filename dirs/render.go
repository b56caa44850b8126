package dirs

// FileOptions is the attribute set a packaging backend builds for a single
// package entry.
type FileOptions interface {
	// SetDirMode marks the entry as a directory with the given permission bits.
	SetDirMode(perm uint16)
	SetUser(user string)
	SetGroup(group string)
	// SetCaps fails if the backend cannot encode the capability string.
	SetCaps(caps string) error
}

// Render converts d into the backend attributes created by newOptions.
func Render[O FileOptions](d Dir, newOptions func(path string) O) (O, error) {
	opts := newOptions(d.path)
	opts.SetDirMode(d.mode)
	if user, ok := d.User(); ok {
		opts.SetUser(user)
	}
	if group, ok := d.Group(); ok {
		opts.SetGroup(group)
	}
	if caps, ok := d.Caps(); ok {
		if err := opts.SetCaps(caps); err != nil {
			var zero O
			return zero, &InvalidCapabilitiesError{Index: d.index, Err: err}
		}
	}
	return opts, nil
}

// RenderAll renders all dirs in order and stops at the first error.
func RenderAll[O FileOptions](dirs []Dir, newOptions func(path string) O) ([]O, error) {
	result := make([]O, 0, len(dirs))
	for _, d := range dirs {
		opts, err := Render(d, newOptions)
		if err != nil {
			return nil, err
		}
		result = append(result, opts)
	}
	return result, nil
}
