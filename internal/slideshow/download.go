package slideshow

import "encoding/base64"

// DownloadName is the file name offered for the raw slide markup.
const DownloadName = "presentation.html"

// DataURI encodes the raw slide markup as a base64 text/html data URI.
func DataURI(slides string) string {
	return "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(slides))
}
