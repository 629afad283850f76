package desktop

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
)

const iconSize = 32

// TrayIcon renders the tray icon for goos: a half-shaded circle, PNG encoded,
// wrapped in an ICO container on Windows.
func TrayIcon(goos string) ([]byte, error) {
	data, err := iconPNG(iconSize)
	if err != nil {
		return nil, err
	}
	if goos == "windows" {
		return wrapICO(data, iconSize), nil
	}
	return data, nil
}

func iconPNG(size int) ([]byte, error) {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	center := float64(size-1) / 2
	radius := float64(size)/2 - 1
	ink := color.NRGBA{A: 0xff}
	shade := color.NRGBA{A: 0x80}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dist := math.Hypot(float64(x)-center, float64(y)-center)
			switch {
			case dist > radius:
			case dist > radius-2 || float64(x) >= center:
				img.SetNRGBA(x, y, ink)
			default:
				img.SetNRGBA(x, y, shade)
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wrapICO builds a single-image ICO file around PNG data.
func wrapICO(pngData []byte, size int) []byte {
	const headerLen = 6 + 16
	var buf bytes.Buffer
	// ICONDIR
	_ = binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1})
	// ICONDIRENTRY
	buf.WriteByte(byte(size))
	buf.WriteByte(byte(size))
	buf.WriteByte(0)
	buf.WriteByte(0)
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(32))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(pngData)))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(headerLen))
	buf.Write(pngData)
	return buf.Bytes()
}
