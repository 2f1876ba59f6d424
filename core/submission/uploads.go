package submission

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/gradia/gradia/core"
)

// UploadPolicy is the allow-list of file types and the size cap applied to
// submission attachments.
type UploadPolicy struct {
	AllowedTypes []string
	MaxSize      int64 // bytes
}

// DefaultUploadPolicy matches what the grading workflow accepts.
var DefaultUploadPolicy = UploadPolicy{
	AllowedTypes: []string{"pdf", "doc", "docx", "txt", "jpg", "jpeg", "png"},
	MaxSize:      5 << 20, // 5 MiB
}

func (p UploadPolicy) allows(ext string) bool {
	for _, t := range p.AllowedTypes {
		if t == ext {
			return true
		}
	}
	return false
}

// ValidatedFile describes an upload that passed the policy, carrying the
// generated collision-resistant stored name (original extension preserved).
type ValidatedFile struct {
	Name         string
	OriginalName string
	Size         int64
}

// ValidateUpload checks a file against the upload policy: both the filename
// extension and the sniffed content type must be on the allow-list, and the
// size must not exceed the cap. Rejections distinguish "too large" from
// "unsupported type".
func ValidateUpload(fh *multipart.FileHeader, policy UploadPolicy) (ValidatedFile, error) {
	if fh.Size > policy.MaxSize {
		return ValidatedFile{}, core.NewUploadError(core.UploadTooLarge, "File is too large. Maximum size is 5MB")
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(fh.Filename)), ".")
	if !policy.allows(ext) {
		return ValidatedFile{}, core.NewUploadError(
			core.UploadUnsupportedType, "Only PDF, DOC, DOCX, TXT, JPG, JPEG, and PNG files are allowed")
	}

	f, err := fh.Open()
	if err != nil {
		return ValidatedFile{}, errors.Wrap(err, "opening upload")
	}
	defer f.Close()

	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return ValidatedFile{}, errors.Wrap(err, "sniffing upload")
	}
	if !policy.allows(strings.TrimPrefix(mt.Extension(), ".")) {
		return ValidatedFile{}, core.NewUploadError(
			core.UploadUnsupportedType, "Only PDF, DOC, DOCX, TXT, JPG, JPEG, and PNG files are allowed")
	}

	return ValidatedFile{
		Name:         "submission-" + uuid.NewString() + "." + ext,
		OriginalName: fh.Filename,
		Size:         fh.Size,
	}, nil
}
