package generator

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorKinds(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &Error{Kind: ErrFileUploadFailed, Path: "a.txt", StatusCode: 500})

	assert.ErrorIs(t, err, ErrFileUploadFailed)
	assert.NotErrorIs(t, err, ErrRepositoryCreationFailed)
	assert.Equal(t, "file_upload_failed", KindName(err))
	assert.Equal(t, "unknown", KindName(errors.New("other")))
}

func TestErrorMessage(t *testing.T) {
	err := &Error{
		Kind:       ErrRepositoryCreationFailed,
		Message:    "failed to create repository",
		StatusCode: 422,
		Body:       "name already exists",
	}

	assert.Equal(t, `repository creation failed: failed to create repository [status 422] name already exists`, err.Error())
}

func TestStaticCredential(t *testing.T) {
	token, err := StaticCredential("abc").Credential()
	assert.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = StaticCredential("").Credential()
	assert.ErrorIs(t, err, ErrMissingCredential)
}
