package ports

import "pricetable/domain/pricing"

// Image is an illustration ready to embed in a page. Missing images carry only their name.
type Image struct {
	Name    string
	DataURI string
	Missing bool
}

// AssetStore resolves page images. It never fails: unreadable files come back Missing.
type AssetStore interface {
	VehicleImage(v pricing.VehicleType) Image
	Image(name string) Image
}
