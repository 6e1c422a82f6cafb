package profile

import (
	"fmt"
	"net/url"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// ShareLink is the contact link encoded in the profile QR code.
func ShareLink(u User) string {
	return fmt.Sprintf("tgclone://user/%s?name=%s", url.PathEscape(u.ID), url.QueryEscape(u.Name))
}

// ShareCode renders ShareLink as a QR code drawn with half-block
// characters, each line prefixed by indent.
func ShareCode(u User, indent string) (string, error) {
	qr, err := qrcode.New(ShareLink(u), qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("generate share code: %w", err)
	}
	qr.DisableBorder = false
	return halfBlocks(qr.Bitmap(), indent), nil
}

// halfBlocks packs two bitmap rows into one terminal line.
func halfBlocks(bitmap [][]bool, indent string) string {
	var sb strings.Builder
	for y := 0; y < len(bitmap); y += 2 {
		sb.WriteString(indent)
		for x := range bitmap[y] {
			top := bitmap[y][x]
			bot := y+1 < len(bitmap) && bitmap[y+1][x]
			switch {
			case top && bot:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bot:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
