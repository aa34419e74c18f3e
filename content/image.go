package content

import (
	"math"
	"strconv"
	"strings"
)

const imageCDN = "https://cdn.sanity.io/images"

// ImageOptions controls the transformation parameters appended to an image URL.
type ImageOptions struct {
	Width      int
	Height     int
	Fit        string // "crop", "clip", "fill", "max", "min", "scale"
	Quality    int
	AutoFormat bool
}

// Asset is the parsed form of an image asset id.
type Asset struct {
	ID     string
	Width  int
	Height int
	Format string
}

// ParseAssetID splits an asset id of the form image-<id>-<W>x<H>-<fmt>.
func ParseAssetID(ref string) (Asset, error) {
	rest, ok := strings.CutPrefix(ref, "image-")
	if !ok {
		return Asset{}, &InvalidReferenceError{Ref: ref}
	}
	i := strings.LastIndexByte(rest, '-')
	if i <= 0 {
		return Asset{}, &InvalidReferenceError{Ref: ref}
	}
	format := rest[i+1:]
	rest = rest[:i]
	j := strings.LastIndexByte(rest, '-')
	if j <= 0 || format == "" {
		return Asset{}, &InvalidReferenceError{Ref: ref}
	}
	dims := rest[j+1:]
	ws, hs, ok := strings.Cut(dims, "x")
	if !ok {
		return Asset{}, &InvalidReferenceError{Ref: ref}
	}
	w, errW := strconv.Atoi(ws)
	h, errH := strconv.Atoi(hs)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return Asset{}, &InvalidReferenceError{Ref: ref}
	}
	return Asset{ID: rest[:j], Width: w, Height: h, Format: format}, nil
}

// BuildAssetURL returns the CDN URL for ref with opts applied. It is a pure
// function of its inputs.
func BuildAssetURL(projectID, dataset string, ref *ImageRef, opts ImageOptions) (string, error) {
	if !ref.HasAsset() {
		return "", &InvalidReferenceError{}
	}
	asset, err := ParseAssetID(ref.Asset.AssetID())
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(imageCDN)
	sb.WriteString("/" + projectID + "/" + dataset + "/")
	sb.WriteString(asset.ID + "-" + strconv.Itoa(asset.Width) + "x" + strconv.Itoa(asset.Height) + "." + asset.Format)

	var params []string
	if rect, ok := cropRect(ref.Crop, asset.Width, asset.Height); ok {
		params = append(params, "rect="+rect)
	}
	if opts.Width > 0 {
		params = append(params, "w="+strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		params = append(params, "h="+strconv.Itoa(opts.Height))
	}
	if opts.Fit != "" {
		params = append(params, "fit="+opts.Fit)
	}
	if opts.Fit == "crop" && ref.Hotspot != nil {
		params = append(params,
			"crop=focalpoint",
			"fp-x="+formatFraction(ref.Hotspot.X),
			"fp-y="+formatFraction(ref.Hotspot.Y),
		)
	}
	if opts.Quality > 0 {
		params = append(params, "q="+strconv.Itoa(opts.Quality))
	}
	if opts.AutoFormat {
		params = append(params, "auto=format")
	}
	if len(params) > 0 {
		sb.WriteString("?" + strings.Join(params, "&"))
	}
	return sb.String(), nil
}

// cropRect converts fractional crop insets to a pixel rectangle left,top,width,height.
func cropRect(c *Crop, w, h int) (string, bool) {
	if c == nil || (c.Top == 0 && c.Bottom == 0 && c.Left == 0 && c.Right == 0) {
		return "", false
	}
	fw, fh := float64(w), float64(h)
	left := math.Round(c.Left * fw)
	top := math.Round(c.Top * fh)
	width := math.Round(fw - c.Right*fw - left)
	height := math.Round(fh - c.Bottom*fh - top)
	if width <= 0 || height <= 0 {
		return "", false
	}
	return strconv.Itoa(int(left)) + "," + strconv.Itoa(int(top)) + "," +
		strconv.Itoa(int(width)) + "," + strconv.Itoa(int(height)), true
}

func formatFraction(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ImageURL builds an image URL against the client's project and dataset.
func (c *Client) ImageURL(ref *ImageRef, opts ImageOptions) (string, error) {
	return BuildAssetURL(c.cfg.ProjectID, c.cfg.Dataset, ref, opts)
}
