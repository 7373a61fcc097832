// Copyright 2022 Nick White.
// Use of this source code is governed by the GPLv3
// license that can be found in the LICENSE file.

//go:build gosseract

package pipeline

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

func init() {
	engines["gosseract"] = func(c EngineConfig) Recognizer {
		return Gosseract{Lang: c.Lang}
	}
}

// Gosseract recognises text using the tesseract library directly,
// rather than running the tesseract command. It needs to be built
// with the gosseract tag, and the tesseract development headers.
type Gosseract struct {
	Lang string // defaults to "eng"
}

// Recognize runs tesseract on imgpath
func (g Gosseract) Recognize(ctx context.Context, imgpath string) (Recognition, error) {
	select {
	case <-ctx.Done():
		return Recognition{}, ctx.Err()
	default:
	}

	lang := g.Lang
	if lang == "" {
		lang = defaultLang
	}

	client := gosseract.NewClient()
	defer client.Close()

	err := client.SetLanguage(lang)
	if err != nil {
		return Recognition{}, fmt.Errorf("Error setting language %s: %v", lang, err)
	}
	err = client.SetPageSegMode(gosseract.PSM_SINGLE_BLOCK)
	if err != nil {
		return Recognition{}, fmt.Errorf("Error setting page segmentation mode: %v", err)
	}
	err = client.SetImage(imgpath)
	if err != nil {
		return Recognition{}, fmt.Errorf("Error loading %s: %v", imgpath, err)
	}

	text, err := client.Text()
	if err != nil {
		return Recognition{}, fmt.Errorf("Error ocring %s: %v", imgpath, err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return Recognition{}, fmt.Errorf("Error retreiving confidence for %s: %v", imgpath, err)
	}
	if len(boxes) == 0 {
		return Recognition{Raw: text, Conf: NoConf}, nil
	}
	var total float64
	for _, b := range boxes {
		total += b.Confidence
	}

	return Recognition{Raw: text, Conf: total / float64(len(boxes))}, nil
}
