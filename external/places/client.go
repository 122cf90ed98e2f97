package places

import (
	"context"

	"googlemaps.github.io/maps"

	"github.com/rrabbani2/GolfMaps/schema"
)

// Client looks up course popularity data from the Google Places API.
type Client struct {
	mapsClient *maps.Client
}

func New(apiKey string) (*Client, error) {
	mapsClient, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	return &Client{
		mapsClient: mapsClient,
	}, nil
}

// PopularitySignal fetches the rating summary for a place. Callers treat
// any error as "no signal" and score without the popularity term.
func (c *Client) PopularitySignal(ctx context.Context, placeID string) (*schema.PopularitySignal, error) {
	resp, err := c.mapsClient.PlaceDetails(ctx, &maps.PlaceDetailsRequest{
		PlaceID: placeID,
		Fields: []maps.PlaceDetailsFieldMask{
			maps.PlaceDetailsFieldMaskRatings,
			maps.PlaceDetailsFieldMaskUserRatingsTotal,
		},
	})
	if err != nil {
		return nil, err
	}

	return &schema.PopularitySignal{
		Rating:      float64(resp.Rating),
		ReviewCount: resp.UserRatingsTotal,
	}, nil
}
