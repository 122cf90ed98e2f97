// Package geo resolves free-form addresses to coordinates. Geocoding is
// an external collaborator; only its interface boundary matters here.
package geo

import (
	"fmt"

	"github.com/rrabbani2/GolfMaps/external/nominatim"
)

var ErrLocationNotFound = fmt.Errorf("location is not found")

type LocationSearcher interface {
	LookupCoordinate(query string) (float64, float64, error)
}

type NominatimSearcher struct {
	client *nominatim.Client
}

func NewNominatimSearcher(endpoint string) *NominatimSearcher {
	return &NominatimSearcher{
		client: nominatim.New(endpoint),
	}
}

func (n *NominatimSearcher) LookupCoordinate(query string) (float64, float64, error) {
	results, err := n.client.Query(query)
	if err != nil {
		return 0, 0, err
	}

	if len(results) == 0 {
		return 0, 0, ErrLocationNotFound
	}

	return results[0].Latitude, results[0].Longitude, nil
}
