package helpers

// DefaultHeroImage is used for countries without a dedicated hero shot.
const DefaultHeroImage = "https://images.unsplash.com/photo-1503264116251-35a269479413"

// HeroImages maps a country to the hero image on its landing page.
var HeroImages = map[string]string{
	"India":          "https://images.unsplash.com/photo-1524492412937-b28074a5d7da",
	"United States":  "https://images.unsplash.com/photo-1501594907352-04cda38ebc29",
	"Italy":          "https://images.unsplash.com/photo-1515542622106-78bda8ba0e5b",
	"Switzerland":    "https://images.unsplash.com/photo-1530122037265-a5f1f91d3b99",
	"Mexico":         "https://images.unsplash.com/photo-1518105779142-d975f22f1b0a",
	"Indonesia":      "https://images.unsplash.com/photo-1537996194471-e657df975ab4",
	"Canada":         "https://images.unsplash.com/photo-1503614472-8c93d56e92ce",
	"Thailand":       "https://images.unsplash.com/photo-1528181304800-259b08848526",
	"United Kingdom": "https://images.unsplash.com/photo-1513635269975-59663e0ac1ad",
	"Japan":          "https://images.unsplash.com/photo-1493976040374-85c8e12f0c0e",
}

// HeroImageFor resolves the hero image for a country, falling back to the
// default when the country has no entry.
func HeroImageFor(country string) string {
	if url, ok := HeroImages[country]; ok {
		return url
	}
	return DefaultHeroImage
}
