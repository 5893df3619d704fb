package img

import (
	"context"
	"fmt"

	"github.com/tendant/bucket-thumbnailer/internal/converters"
	"github.com/tendant/bucket-thumbnailer/internal/media"
)

// Generator turns a source file into a single thumbnail file.
type Generator interface {
	// Generate reads srcPath and writes the thumbnail to dstPath
	Generate(ctx context.Context, srcPath, dstPath string) (Output, error)

	// Name returns the generator name for logging
	Name() string
}

// GetGenerator returns the generator for kind:
//   - Images: imaging library, in process
//   - Videos: frame extraction through extractor
func GetGenerator(kind media.Kind, extractor converters.FrameExtractor) (Generator, error) {
	switch kind {
	case media.KindImage:
		return &ImageGenerator{}, nil
	case media.KindVideo:
		return NewVideoGenerator(extractor), nil
	default:
		return nil, fmt.Errorf("unsupported kind: %s", kind)
	}
}

// ImageGenerator implements Generator for still images using the imaging library.
type ImageGenerator struct{}

// Generate implements Generator.Generate for images
func (g *ImageGenerator) Generate(ctx context.Context, srcPath, dstPath string) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	return GenerateThumbnail(srcPath, dstPath, MaxWidth, MaxHeight)
}

// Name implements Generator.Name
func (g *ImageGenerator) Name() string {
	return "image"
}
