package request

import (
	"fmt"
	"io"
	"mime/multipart"

	"github.com/reusedev/vector-hub/internal/consts"
	"github.com/reusedev/vector-hub/internal/modules/vectorize"
)

type Vectorize struct {
	File         *multipart.FileHeader `form:"image"`     // 二选一：上传文件
	URL          string                `form:"image.url"` // 二选一：远程图片地址
	Mode         string                `form:"mode"`
	OutputFormat string                `form:"output.file_format"`
}

func (v *Vectorize) Valid() error {
	if v.File == nil && v.URL == "" {
		return fmt.Errorf("must fill image or image.url")
	}
	if v.File != nil && v.URL != "" {
		return fmt.Errorf("image and image.url are mutually exclusive")
	}
	if !consts.Mode(v.Mode).Valid() {
		return fmt.Errorf("invalid mode: %s", v.Mode)
	}
	if !consts.OutputFormat(v.OutputFormat).Valid() {
		return fmt.Errorf("invalid output format: %s", v.OutputFormat)
	}
	return nil
}

// ToModule turns the bound form into an upstream request, reading the
// uploaded file into memory.
func (v *Vectorize) ToModule() (*vectorize.Request, error) {
	ret := &vectorize.Request{
		ImageURL:     v.URL,
		Mode:         consts.Mode(v.Mode),
		OutputFormat: consts.OutputFormat(v.OutputFormat),
	}
	if v.File != nil {
		f, err := v.File.Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return nil, err
		}
		ret.ImageBytes = data
		ret.FileName = v.File.Filename
		ret.MimeType = v.File.Header.Get("Content-Type")
	}
	return ret, nil
}
