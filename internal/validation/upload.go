package validation

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/voicenotes/scribe/internal/errors"
)

// audioExtensions is the accepted set of upload file extensions. Formats the
// transcription backends cannot decode are rejected at the boundary.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".m4a":  true,
	".aac":  true,
	".ogg":  true,
	".opus": true,
	".flac": true,
	".webm": true,
}

// ValidateUpload checks the uploaded file's name and declared size before
// anything is written to disk.
func ValidateUpload(filename string, size int64, maxBytes int64) error {
	if strings.TrimSpace(filename) == "" {
		return errors.NewValidationError(
			"uploaded file has no filename",
			"UPLOAD_FILENAME_MISSING",
			"Send the audio as a multipart form file with a filename.",
		)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !audioExtensions[ext] {
		return errors.NewValidationError(
			fmt.Sprintf("unsupported audio file extension: %q", ext),
			"UPLOAD_UNSUPPORTED_FORMAT",
			"Upload one of: mp3, wav, m4a, aac, ogg, opus, flac, webm.",
		)
	}

	if maxBytes > 0 && size > maxBytes {
		return errors.NewValidationError(
			fmt.Sprintf("uploaded file is too large: %d bytes (limit %d)", size, maxBytes),
			"UPLOAD_TOO_LARGE",
			"Split the recording or upload a compressed format.",
		)
	}

	return nil
}
