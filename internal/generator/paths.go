package generator

import "strings"

// ValidatePath rejects empty paths, absolute paths and paths with a ".." segment
func ValidatePath(path string) error {
	if path == "" {
		return &Error{Kind: ErrInvalidArgument, Message: "empty file path"}
	}
	if strings.HasPrefix(path, "/") {
		return &Error{Kind: ErrInvalidArgument, Message: "file path must be relative", Path: path}
	}
	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return &Error{Kind: ErrInvalidArgument, Message: "file path escapes the repository", Path: path}
		}
	}
	return nil
}
