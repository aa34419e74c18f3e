package contenttest

import "fmt"

// Ref returns a reference to the document with the given id.
func Ref(id string) Doc {
	return Doc{"_type": "reference", "_ref": id}
}

// Slug returns a slug field.
func Slug(s string) Doc {
	return Doc{"_type": "slug", "current": s}
}

// ImageAsset returns an image asset document for an id of the form
// image-<id>-<W>x<H>-<fmt>.
func ImageAsset(id string) Doc {
	return Doc{
		"_id":   id,
		"_type": "sanity.imageAsset",
		"url":   fmt.Sprintf("https://cdn.sanity.io/images/test/production/%s", id),
	}
}

// Image returns an image field referencing the asset id.
func Image(assetID string) Doc {
	return Doc{"_type": "image", "asset": Ref(assetID)}
}
