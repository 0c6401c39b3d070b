package utils

func Ptr[T any](v T) *T {
	return &v
}

// PtrIf returns a pointer to v when set is true, nil otherwise. Used to build partial
// update requests from form fields and flags.
func PtrIf[T any](set bool, v T) *T {
	if !set {
		return nil
	}
	return Ptr(v)
}
