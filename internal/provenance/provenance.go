// Package provenance scores how likely an image was captured by a physical
// camera, based on embedded EXIF metadata. Generative models do not emit
// camera EXIF, so a populated capture signature is strong evidence against
// synthesis. Scoring must run on the original upload bytes: re-encoding
// strips the metadata this package reads.
package provenance

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
)

// signatureThreshold is the number of capture fields required before the
// metadata counts as a camera signature.
const signatureThreshold = 3

// cameraFields enumerates EXIF tags that real capture pipelines populate.
var cameraFields = []exif.FieldName{
	"Make",
	"Model",
	"DateTime",
	"ExposureTime",
	"FNumber",
	"ISOSpeedRatings",
	"DateTimeOriginal",
	"DateTimeDigitized",
	"ShutterSpeedValue",
	"ApertureValue",
	"ExposureBiasValue",
	"MeteringMode",
	"Flash",
	"FocalLength",
	"PixelXDimension",
	"PixelYDimension",
	"ExposureMode",
	"WhiteBalance",
	"LensInfo",
	"LensMake",
	"LensModel",
}

// Result describes the camera-provenance signal for one upload.
// HasCameraSignature is true iff SignatureFieldCount >= 3.
type Result struct {
	HasCameraSignature  bool     `json:"has_camera_exif"`
	SignatureFieldCount int      `json:"camera_field_count"`
	Summary             string   `json:"camera_info"`
	Fields              []string `json:"fields"`
}

// Score inspects the raw upload bytes for capture metadata. Absent or
// unparseable metadata is a zero-count result, never an error.
func Score(raw []byte) Result {
	x, err := exif.Decode(bytes.NewReader(raw))
	if err != nil || x == nil {
		return Result{
			Summary: "No EXIF metadata - consistent with synthetic or re-encoded media",
			Fields:  []string{},
		}
	}

	var found []string
	var cameraInfo []string
	for _, field := range cameraFields {
		tag, err := x.Get(field)
		if err != nil || tag == nil {
			continue
		}
		found = append(found, string(field))
		if field == "Make" || field == "Model" {
			if value, err := tag.StringVal(); err == nil {
				cameraInfo = append(cameraInfo, fmt.Sprintf("%s=%s", field, strings.TrimSpace(value)))
			}
		}
	}

	return buildResult(found, cameraInfo)
}

func buildResult(found, cameraInfo []string) Result {
	count := len(found)
	has := count >= signatureThreshold

	cameraStr := "Unknown camera"
	if len(cameraInfo) > 0 {
		cameraStr = strings.Join(cameraInfo, ", ")
	}

	var summary string
	if has {
		preview := found
		if len(preview) > 6 {
			preview = preview[:6]
		}
		summary = fmt.Sprintf("Real camera detected (%s, %d EXIF fields: %s)",
			cameraStr, count, strings.Join(preview, ", "))
	} else {
		summary = fmt.Sprintf("Minimal EXIF (%d fields) - may be synthetic or stripped", count)
	}

	if found == nil {
		found = []string{}
	}
	return Result{
		HasCameraSignature:  has,
		SignatureFieldCount: count,
		Summary:             summary,
		Fields:              found,
	}
}
