// Package bring builds the artifacts needed to hand a recipe over to
// the Bring! shopping list app: the deeplink into the app and the
// HTML document with schema.org markup that the app imports from.
package bring

import (
	"fmt"
	"net/url"
	"strconv"
)

const deeplinkBase = "https://api.getbring.com/rest/bringrecipes/deeplink"

// DeeplinkURL builds the Bring! import deeplink for a recipe. The link
// points Bring! at our public recipe document and carries the base and
// requested portion counts so the app can scale amounts itself.
func DeeplinkURL(publicBaseURL, recipeID string, baseYield, requestedYield int) string {
	recipeEndpoint := fmt.Sprintf("%s/api/recipes/bring/%s", publicBaseURL, recipeID)

	params := url.Values{}
	params.Set("url", recipeEndpoint)
	params.Set("source", "web")
	params.Set("baseQuantity", strconv.Itoa(baseYield))
	params.Set("requestedQuantity", strconv.Itoa(requestedYield))

	return deeplinkBase + "?" + params.Encode()
}
