package catalog

import (
	"regexp"
	"strings"
)

// ImageResolver picks a displayable image for a product and repairs broken
// sources in already-rendered cards. The keyword rules are catalog-specific,
// so callers depend on the interface.
type ImageResolver interface {
	Resolve(p Product) string
	Repair(src, name, category string) string
}

// KeywordResolver maps product names/categories onto the bundled fallback
// art. Resolution order: image_urls[0], image_url, first keyword match,
// generic fallback.
type KeywordResolver struct {
	// BasePath prefixes fallback file names; defaults to /static/images.
	BasePath string
}

const genericFallbackImage = "led_desk_lamp.svg"

var imageRules = []struct {
	re   *regexp.Regexp
	file string
}{
	{regexp.MustCompile(`headphone|earbud|audio|sound`), "wireless_headphones.svg"},
	{regexp.MustCompile(`speaker|bluetooth`), "wireless_speaker.svg"},
	{regexp.MustCompile(`smartwatch|watch|fitness`), "smartwatch.svg"},
	{regexp.MustCompile(`usb|cable|charger`), "usb_c_cable.svg"},
	{regexp.MustCompile(`lamp|led|light`), "led_desk_lamp.svg"},
	{regexp.MustCompile(`shoe|sneaker|runner`), "running_shoes.svg"},
	{regexp.MustCompile(`jacket|coat|winter`), "winter_jacket.svg"},
	{regexp.MustCompile(`tshirt|tee|shirt`), "tshirt.svg"},
	{regexp.MustCompile(`jeans|denim`), "denim_jeans.svg"},
	{regexp.MustCompile(`garden|tool|outdoor`), "garden_tool_set.svg"},
	{regexp.MustCompile(`python|code|programming`), "python_programming_guide.svg"},
	{regexp.MustCompile(`web|html|css|javascript`), "web_development_handbook.svg"},
}

func (r KeywordResolver) Resolve(p Product) string {
	if len(p.ImageURLs) > 0 && strings.TrimSpace(p.ImageURLs[0]) != "" {
		return p.ImageURLs[0]
	}
	if p.ImageURL != nil && strings.TrimSpace(*p.ImageURL) != "" {
		return *p.ImageURL
	}
	return r.fallback(p.Name, p.CategoryName())
}

// Repair replaces sources that are empty or point at a known-broken
// placeholder host; anything else passes through untouched.
func (r KeywordResolver) Repair(src, name, category string) string {
	trimmed := strings.TrimSpace(src)
	if trimmed != "" && !strings.Contains(trimmed, "via.placeholder.com") {
		return src
	}
	return r.fallback(name, category)
}

func (r KeywordResolver) fallback(name, category string) string {
	name = strings.ToLower(name)
	category = strings.ToLower(category)

	file := genericFallbackImage
	for _, rule := range imageRules {
		if rule.re.MatchString(name) || rule.re.MatchString(category) {
			file = rule.file
			break
		}
	}

	base := r.BasePath
	if base == "" {
		base = "/static/images"
	}
	return strings.TrimRight(base, "/") + "/" + file
}
