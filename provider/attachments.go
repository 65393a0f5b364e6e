package provider

import (
	"encoding/base64"
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"grokmcp/config"
	"grokmcp/model"

	"github.com/openai/openai-go/v3"
)

// MaxAttachmentBytes caps a local vision attachment before encoding.
const MaxAttachmentBytes = 10 << 20

// attachmentMIME maps the accepted extensions to the MIME type the file
// content must sniff as.
var attachmentMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
}

// encodeAttachment reads a local image and returns it as a data URL.
//
// The extension must be jpg/jpeg/png and the bytes must actually be that kind
// of image; a renamed text file is rejected rather than sent to the vendor.
func encodeAttachment(path string) (string, error) {
	path = config.ExpandPath(path)
	ext := strings.ToLower(filepath.Ext(path))

	wantMIME, ok := attachmentMIME[ext]
	if !ok {
		return "", model.AttachmentError(path, nil, "unsupported image type %q (supported: jpg, jpeg, png)", ext)
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", model.AttachmentError(path, err, "image file not found")
	case err != nil:
		return "", model.AttachmentError(path, err, "cannot stat image")
	case info.IsDir():
		return "", model.AttachmentError(path, nil, "is a directory")
	case info.Size() == 0:
		return "", model.AttachmentError(path, nil, "image file is empty")
	case info.Size() > MaxAttachmentBytes:
		return "", model.AttachmentError(path, nil, "image is %d bytes, limit is %d", info.Size(), MaxAttachmentBytes)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", model.AttachmentError(path, err, "cannot read image")
	}

	if got := http.DetectContentType(data); got != wantMIME {
		return "", model.AttachmentError(path, nil, "content is %s, expected %s", got, wantMIME)
	}

	return "data:" + wantMIME + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// buildVisionParts assembles the user content: local images first, then
// URLs as given, then the prompt text. Every image part carries the detail level.
func buildVisionParts(params model.VisionParams) ([]openai.ChatCompletionContentPartUnionParam, error) {
	parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(params.ImagePaths)+len(params.ImageURLs)+1)

	for _, path := range params.ImagePaths {
		dataURL, err := encodeAttachment(path)
		if err != nil {
			return nil, err
		}
		parts = append(parts, imagePart(dataURL, params.Detail))
	}

	for _, u := range params.ImageURLs {
		parts = append(parts, imagePart(u, params.Detail))
	}

	parts = append(parts, openai.TextContentPart(params.Prompt))
	return parts, nil
}

func imagePart(u string, detail model.Detail) openai.ChatCompletionContentPartUnionParam {
	return openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
		URL:    u,
		Detail: string(detail),
	})
}
