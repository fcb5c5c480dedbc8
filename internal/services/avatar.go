package services

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"

	"github.com/yungbote/agrovet-backend/internal/domain/user"
	"github.com/yungbote/agrovet-backend/internal/platform/logger"
)

const avatarBaseSize = 512

// avatarPalette maps the stored color tags to RGB.
var avatarPalette = map[string]string{
	"bg-slate-500":   "#64748B",
	"bg-slate-700":   "#334155",
	"bg-emerald-600": "#059669",
	"bg-amber-600":   "#D97706",
	"bg-sky-600":     "#0284C7",
}

const fallbackAvatarHex = "#334155"

type AvatarService interface {
	// RenderPNG draws the user's initial on their avatar color, clipped to a
	// circle, at size x size pixels.
	RenderPNG(ctx context.Context, u *user.User, size int) ([]byte, error)
}

type avatarService struct {
	log *logger.Logger

	// font.Face caches glyphs and is not safe for concurrent use
	mu       sync.Mutex
	fontFace font.Face
}

// NewAvatarService loads AVATAR_FONT when set, else the bundled Go Bold face.
func NewAvatarService(log *logger.Logger) (AvatarService, error) {
	serviceLog := log.With("service", "AvatarService")

	fontBytes := gobold.TTF
	if fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT")); fontPath != "" {
		serviceLog.Info("Loading avatar font", "font", fontPath)
		raw, err := os.ReadFile(fontPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read font file: %w", err)
		}
		fontBytes = raw
	}
	parsed, err := truetype.Parse(fontBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", err)
	}

	return &avatarService{
		log: serviceLog,
		fontFace: truetype.NewFace(parsed, &truetype.Options{
			Size:    avatarBaseSize * 0.45,
			DPI:     72,
			Hinting: font.HintingNone,
		}),
	}, nil
}

func (as *avatarService) RenderPNG(ctx context.Context, u *user.User, size int) ([]byte, error) {
	if u == nil {
		return nil, fmt.Errorf("user required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if size <= 0 || size > avatarBaseSize {
		size = avatarBaseSize
	}

	img, err := as.drawBase(u)
	if err != nil {
		return nil, err
	}

	var out image.Image = img
	if size != avatarBaseSize {
		dst := image.NewRGBA(image.Rect(0, 0, size, size))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
		out = dst
	}

	var buf bytes.Buffer
	dc := gg.NewContextForImage(out)
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (as *avatarService) drawBase(u *user.User) (image.Image, error) {
	const size = avatarBaseSize
	dc := gg.NewContext(size, size)

	dc.DrawCircle(float64(size)/2, float64(size)/2, float64(size)/2)
	dc.Clip()

	dc.SetColor(ColorForTag(u.AvatarColor))
	dc.DrawRectangle(0, 0, float64(size), float64(size))
	dc.Fill()

	initial := u.Initial()

	as.mu.Lock()
	defer as.mu.Unlock()
	dc.SetFontFace(as.fontFace)
	dc.SetColor(color.White)
	dc.DrawStringAnchored(initial, float64(size)/2, float64(size)/2, 0.5, 0.35)
	return dc.Image(), nil
}

// ColorForTag resolves a stored avatar color tag, falling back to slate-700
// for unknown tags.
func ColorForTag(tag string) color.NRGBA {
	h, ok := avatarPalette[strings.TrimSpace(tag)]
	if !ok {
		h = fallbackAvatarHex
	}
	r, g, b, err := parseHexRGB(h)
	if err != nil {
		return color.NRGBA{R: 0x33, G: 0x41, B: 0x55, A: 0xFF}
	}
	return color.NRGBA{R: r, G: g, B: b, A: 0xFF}
}

func parseHexRGB(s string) (r, g, b uint8, err error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("expected 6 hex chars")
	}
	raw, err := hex.DecodeString(s)
	if err != nil || len(raw) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid hex")
	}
	return raw[0], raw[1], raw[2], nil
}
