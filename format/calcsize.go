package format

// CalcSize returns the total encoded size in bytes implied by a format
// string, computed from the format alone.
//
// It fails with an error wrapping errs.ErrFormat if the format string is
// malformed, and with errs.ErrUndefinedSize if the format contains
// variable-length fields (CString, Blob), whose encoded size can only be
// known from the packed values.
func CalcSize(format string) (int, error) {
	cf, err := Compile(format)
	if err != nil {
		return 0, err
	}

	return cf.StaticSize()
}
