package recap

import (
	"strings"
)

// CityStateResolver supplies the "City, ST" of a school whose row lacks one.
type CityStateResolver interface {
	Resolve(school string) (string, error)
}

// StaticResolver resolves schools from a fixed table. Lookups ignore case and
// surrounding whitespace.
type StaticResolver struct {
	schools map[string]string
}

// NewStaticResolver creates a resolver over schools (school name → "City, ST").
func NewStaticResolver(schools map[string]string) *StaticResolver {
	r := &StaticResolver{schools: make(map[string]string, len(schools))}
	for school, cityState := range schools {
		r.schools[schoolKey(school)] = cityState
	}
	return r
}

// With returns a new resolver holding r's entries plus extra; extra wins on conflict.
func (r *StaticResolver) With(extra map[string]string) *StaticResolver {
	merged := &StaticResolver{schools: make(map[string]string, len(r.schools)+len(extra))}
	for k, v := range r.schools {
		merged.schools[k] = v
	}
	for school, cityState := range extra {
		merged.schools[schoolKey(school)] = cityState
	}
	return merged
}

// Resolve implements CityStateResolver.
func (r *StaticResolver) Resolve(school string) (string, error) {
	if cityState, ok := r.schools[schoolKey(school)]; ok {
		return cityState, nil
	}
	return "", &LookupError{School: school}
}

// Len returns the number of known schools.
func (r *StaticResolver) Len() int {
	return len(r.schools)
}

func schoolKey(school string) string {
	return strings.ToLower(strings.Join(strings.Fields(school), " "))
}

// DefaultSchools lists UMEA member schools seen on recaps.
var DefaultSchools = map[string]string{
	"Alta":           "Sandy, UT",
	"American Fork":  "American Fork, UT",
	"Bingham":        "South Jordan, UT",
	"Bonneville":     "Washington Terrace, UT",
	"Bountiful":      "Bountiful, UT",
	"Box Elder":      "Brigham City, UT",
	"Brighton":       "Cottonwood Heights, UT",
	"Cedar":          "Cedar City, UT",
	"Copper Hills":   "West Jordan, UT",
	"Corner Canyon":  "Draper, UT",
	"Crimson Cliffs": "Washington, UT",
	"Cyprus":         "Magna, UT",
	"Davis":          "Kaysville, UT",
	"Desert Hills":   "St. George, UT",
	"Dixie":          "St. George, UT",
	"Farmington":     "Farmington, UT",
	"Fremont":        "Plain City, UT",
	"Granger":        "West Valley City, UT",
	"Green Canyon":   "North Logan, UT",
	"Herriman":       "Herriman, UT",
	"Hillcrest":      "Midvale, UT",
	"Hunter":         "West Valley City, UT",
	"Jordan":         "Sandy, UT",
	"Layton":         "Layton, UT",
	"Lehi":           "Lehi, UT",
	"Logan":          "Logan, UT",
	"Lone Peak":      "Highland, UT",
	"Maple Mountain": "Spanish Fork, UT",
	"Mountain Crest": "Hyrum, UT",
	"Mountain Ridge": "Herriman, UT",
	"Mountain View":  "Orem, UT",
	"Northridge":     "Layton, UT",
	"Orem":           "Orem, UT",
	"Park City":      "Park City, UT",
	"Payson":         "Payson, UT",
	"Pine View":      "St. George, UT",
	"Pleasant Grove": "Pleasant Grove, UT",
	"Ridgeline":      "Millville, UT",
	"Riverton":       "Riverton, UT",
	"Roy":            "Roy, UT",
	"Salem Hills":    "Salem, UT",
	"Skyridge":       "Lehi, UT",
	"Sky View":       "Smithfield, UT",
	"Snow Canyon":    "St. George, UT",
	"Spanish Fork":   "Spanish Fork, UT",
	"Springville":    "Springville, UT",
	"Stansbury":      "Stansbury Park, UT",
	"Syracuse":       "Syracuse, UT",
	"Timpanogos":     "Orem, UT",
	"Tooele":         "Tooele, UT",
	"Uintah":         "Vernal, UT",
	"Viewmont":       "Bountiful, UT",
	"Wasatch":        "Heber City, UT",
	"Weber":          "Pleasant View, UT",
	"West Jordan":    "West Jordan, UT",
	"Westlake":       "Saratoga Springs, UT",
	"Woods Cross":    "Woods Cross, UT",
}
