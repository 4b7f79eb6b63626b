// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxLogoPixels bounds the logo width; it is displayed 60pt wide.
const maxLogoPixels = 480

/*
normalizeLogo makes logo bytes embeddable as PNG or JPEG.

Description: PNG and JPEG within the size bound are returned unchanged. WebP,
BMP, TIFF and GIF are decoded and re-encoded as PNG, downscaled when wider than
the bound.
*/
func normalizeLogo(data []byte) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("sniff logo: %w", err)
	}
	if (format == "png" || format == "jpeg") && cfg.Width <= maxLogoPixels {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s logo: %w", format, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxLogoPixels {
		height := bounds.Dy() * maxLogoPixels / bounds.Dx()
		if height < 1 {
			height = 1
		}
		resized := image.NewRGBA(image.Rect(0, 0, maxLogoPixels, height))
		xdraw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, xdraw.Over, nil)
		img = resized
	}

	var out bytes.Buffer
	if err := png.Encode(&out, img); err != nil {
		return nil, fmt.Errorf("encode logo: %w", err)
	}
	return out.Bytes(), nil
}
