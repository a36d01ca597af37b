package facebook_tracking

import (
	"fmt"
	"strings"
	"tracking-relay/dto"

	"github.com/spf13/viper"
)

// DefaultPixelCode is the stream every event falls back to when no
// campaign-specific mapping applies.
const DefaultPixelCode = "main_pixel"

// GetPixelByCode resolves the pixel list configured under
// tracking.<code>. The config value uses the compact
// "pixelId/token-testcode-code" format, comma or newline separated.
func GetPixelByCode(code string) []*dto.Pixel {
	return ParsePixelList(viper.GetString(fmt.Sprintf("tracking.%v", code)))
}

// PixelsForSource selects the destination streams for a campaign source
// tag. Mappings live under tracking.sources.<tag> and name another
// tracking.<code> entry, so adding a landing-page campaign is a config
// change only. Unknown or empty tags resolve to the main pixel.
func PixelsForSource(source string) []*dto.Pixel {
	code := DefaultPixelCode
	if source != "" {
		if mapped := viper.GetString("tracking.sources." + strings.ToLower(strings.TrimSpace(source))); mapped != "" {
			code = mapped
		}
	}
	pixels := GetPixelByCode(code)
	if len(pixels) == 0 && code != DefaultPixelCode {
		pixels = GetPixelByCode(DefaultPixelCode)
	}
	return pixels
}

// ParsePixelList parses a raw pixel list. Entries are separated by
// commas or newlines; each entry is "id", "id/token" or
// "id/token-testcode-code". Blank entries are skipped.
func ParsePixelList(raw string) []*dto.Pixel {
	result := make([]*dto.Pixel, 0)
	for _, line := range strings.Split(raw, "\n") {
		for _, entry := range strings.Split(line, ",") {
			parts := strings.Split(entry, "/")
			id := strings.Trim(parts[0], " \t")
			if len(id) == 0 {
				continue
			}

			pixel := &dto.Pixel{Id: id}
			if len(parts) > 1 {
				tokens := strings.Split(parts[1], "-testcode-")
				pixel.Token = strings.Trim(tokens[0], " \t")
				if len(tokens) > 1 {
					pixel.TestCode = strings.Trim(tokens[1], " \t")
				}
			}
			result = append(result, pixel)
		}
	}
	return result
}
