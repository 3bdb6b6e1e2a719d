package middleware

import (
	"fmt"
	"net"
	"net/http"
	"time"

	"musa/utils"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	geoLocationKey     = "geoLocation"
	defaultGeoEndpoint = "https://ipapi.co/%s/json/"
	unknownCountry     = "Unknown"
	geoCacheTTL        = time.Hour
	// Past this many entries new answers are served but not cached.
	maxGeoCacheEntries = 10000
)

// GeoLocation represents the geolocation information for an IP.
type GeoLocation struct {
	IP          string  `json:"ip"`
	City        string  `json:"city"`
	Region      string  `json:"region"`
	Country     string  `json:"country_name"`
	CountryCode string  `json:"country_code"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

// List of restricted countries.
var restrictedCountries = map[string]bool{
	"North Korea": true,
	"Iran":        true,
}

// Geolocator resolves client IPs through ipapi.co and caches the answers.
type Geolocator struct {
	Endpoint   string // printf pattern taking the IP
	HTTPClient *http.Client
	MaxEntries int

	cache *cache.Cache
}

func NewGeolocator() *Geolocator {
	return &Geolocator{
		Endpoint:   defaultGeoEndpoint,
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
		MaxEntries: maxGeoCacheEntries,
		cache:      cache.New(geoCacheTTL, 2*geoCacheTTL),
	}
}

// isPrivateIP checks if an IP is private or loopback.
func isPrivateIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}
	return parsed.IsPrivate() || parsed.IsLoopback()
}

// Lookup never fails: any problem yields a location with an unknown country.
func (g *Geolocator) Lookup(ip string, logger *zap.Logger) *GeoLocation {
	if v, found := g.cache.Get(ip); found {
		if geo, ok := v.(*GeoLocation); ok {
			return geo
		}
	}

	unknown := &GeoLocation{IP: ip, Country: unknownCountry}
	if ip == "" || isPrivateIP(ip) {
		g.store(ip, unknown)
		return unknown
	}

	resp, err := g.HTTPClient.Get(fmt.Sprintf(g.Endpoint, ip))
	if err != nil {
		logger.Error("Failed to query external geolocation API", zap.String("ip", ip), zap.Error(err))
		return unknown
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Error("External geolocation API returned non-OK status", zap.String("ip", ip), zap.Int("status", resp.StatusCode))
		return unknown
	}

	var geo GeoLocation
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		logger.Error("Failed to decode geolocation response", zap.String("ip", ip), zap.Error(err))
		return unknown
	}
	if geo.Country == "" {
		geo.Country = unknownCountry
	}
	g.store(ip, &geo)
	return &geo
}

func (g *Geolocator) store(ip string, geo *GeoLocation) {
	if g.MaxEntries > 0 && g.cache.ItemCount() >= g.MaxEntries {
		return
	}
	g.cache.Set(ip, geo, cache.DefaultExpiration)
}

// GeolocationMiddleware attaches the caller's approximate location so search
// handlers can fall back to the caller's city. Restricted regions get a 403.
func GeolocationMiddleware(g *Geolocator) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()
		geo := g.Lookup(getClientIP(c), logger)

		if restrictedCountries[geo.Country] {
			logger.Warn("Blocked request from restricted region", zap.String("country", geo.Country))
			abort(c, http.StatusForbidden, "Access from your region is restricted")
			return
		}

		c.Set(geoLocationKey, geo)
		c.Next()
	}
}

// ClientCity returns the city resolved by GeolocationMiddleware, if any.
func ClientCity(c *gin.Context) string {
	v, ok := c.Get(geoLocationKey)
	if !ok {
		return ""
	}
	if geo, _ := v.(*GeoLocation); geo != nil {
		return geo.City
	}
	return ""
}
