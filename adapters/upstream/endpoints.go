package upstream

import "net/url"

// Upstream endpoint paths. Parameterized paths percent-encode their
// parameter before interpolation; scientific names contain spaces.
const (
	pathLogin           = "/api/auth/login"
	pathSignup          = "/api/auth/signup"
	pathLogout          = "/api/auth/logout"
	pathValidate        = "/api/auth/validate"
	pathIdentify        = "/api/identify"
	pathIdentifications = "/api/user/identifications"
	pathSavedPlants     = "/api/plants"
	pathUserStats       = "/api/user/stats"
	pathUserProgress    = "/api/user/progress"
	pathPlantOfTheDay   = "/api/user/plant_of_the_day"
	pathActivityFeed    = "/api/user/activity_feed"
)

func pathPlantDetails(scientificName string) string {
	return pathSavedPlants + "/" + url.PathEscape(scientificName)
}

func pathIdentification(id string) string {
	return pathIdentifications + "/" + url.PathEscape(id)
}

func pathFavorite(id string) string {
	return pathIdentification(id) + "/favorite"
}
