package types

// WeatherCode represents a WMO weather code
type WeatherCode int

// WeatherInfo is the human-readable label and icon class for a weather code
type WeatherInfo struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Weather code constants
const (
	ClearSky                     WeatherCode = 0
	MainlyClear                  WeatherCode = 1
	PartlyCloudy                 WeatherCode = 2
	Overcast                     WeatherCode = 3
	Fog                          WeatherCode = 45
	DepositingRimeFog            WeatherCode = 48
	DrizzleLight                 WeatherCode = 51
	DrizzleModerate              WeatherCode = 53
	DrizzleDense                 WeatherCode = 55
	FreezingDrizzleLight         WeatherCode = 56
	FreezingDrizzleDense         WeatherCode = 57
	RainSlight                   WeatherCode = 61
	RainModerate                 WeatherCode = 63
	RainHeavy                    WeatherCode = 65
	FreezingRainLight            WeatherCode = 66
	FreezingRainHeavy            WeatherCode = 67
	SnowFallSlight               WeatherCode = 71
	SnowFallModerate             WeatherCode = 73
	SnowFallHeavy                WeatherCode = 75
	SnowGrains                   WeatherCode = 77
	RainShowersSlight            WeatherCode = 80
	RainShowersModerate          WeatherCode = 81
	RainShowersViolent           WeatherCode = 82
	SnowShowersSlight            WeatherCode = 85
	SnowShowersHeavy             WeatherCode = 86
	ThunderstormSlightOrModerate WeatherCode = 95
	ThunderstormWithSlightHail   WeatherCode = 96
	ThunderstormWithHeavyHail    WeatherCode = 99
)

// Icon classes (Font Awesome solid set)
const (
	IconSun               = "fa-sun"
	IconCloudSun          = "fa-cloud-sun"
	IconCloud             = "fa-cloud"
	IconSmog              = "fa-smog"
	IconCloudRain         = "fa-cloud-rain"
	IconCloudShowersHeavy = "fa-cloud-showers-heavy"
	IconCloudShowersWater = "fa-cloud-showers-water"
	IconSnowflake         = "fa-snowflake"
	IconBolt              = "fa-bolt"
	IconQuestion          = "fa-question"
	UnknownWeatherDesc    = "Unknown"
)

// weatherInfos maps weather codes to their descriptions and icons
var weatherInfos = map[WeatherCode]WeatherInfo{
	ClearSky:                     {"Clear Sky", IconSun},
	MainlyClear:                  {"Mainly Clear", IconCloudSun},
	PartlyCloudy:                 {"Partly Cloudy", IconCloudSun},
	Overcast:                     {"Overcast", IconCloud},
	Fog:                          {"Fog", IconSmog},
	DepositingRimeFog:            {"Depositing Rime Fog", IconSmog},
	DrizzleLight:                 {"Light Drizzle", IconCloudRain},
	DrizzleModerate:              {"Moderate Drizzle", IconCloudRain},
	DrizzleDense:                 {"Dense Drizzle", IconCloudShowersHeavy},
	FreezingDrizzleLight:         {"Light Freezing Drizzle", IconSnowflake},
	FreezingDrizzleDense:         {"Dense Freezing Drizzle", IconSnowflake},
	RainSlight:                   {"Slight Rain", IconCloudRain},
	RainModerate:                 {"Moderate Rain", IconCloudShowersHeavy},
	RainHeavy:                    {"Heavy Rain", IconCloudShowersWater},
	FreezingRainLight:            {"Light Freezing Rain", IconSnowflake},
	FreezingRainHeavy:            {"Heavy Freezing Rain", IconSnowflake},
	SnowFallSlight:               {"Slight Snow Fall", IconSnowflake},
	SnowFallModerate:             {"Moderate Snow Fall", IconSnowflake},
	SnowFallHeavy:                {"Heavy Snow Fall", IconSnowflake},
	SnowGrains:                   {"Snow Grains", IconSnowflake},
	RainShowersSlight:            {"Slight Rain Showers", IconCloudRain},
	RainShowersModerate:          {"Moderate Rain Showers", IconCloudShowersHeavy},
	RainShowersViolent:           {"Violent Rain Showers", IconCloudShowersWater},
	SnowShowersSlight:            {"Slight Snow Showers", IconSnowflake},
	SnowShowersHeavy:             {"Heavy Snow Showers", IconSnowflake},
	ThunderstormSlightOrModerate: {"Thunderstorm", IconBolt},
	ThunderstormWithSlightHail:   {"Thunderstorm with Hail", IconBolt},
	ThunderstormWithHeavyHail:    {"Thunderstorm with Heavy Hail", IconBolt},
}

// GetWeatherInfo returns the description and icon for a given weather code.
// Codes outside the WMO table map to "Unknown" with a question-mark icon.
func GetWeatherInfo(code int) WeatherInfo {
	if info, ok := weatherInfos[WeatherCode(code)]; ok {
		return info
	}
	return WeatherInfo{Description: UnknownWeatherDesc, Icon: IconQuestion}
}

// KnownWeatherCodes returns every code registered in the table
func KnownWeatherCodes() []WeatherCode {
	codes := make([]WeatherCode, 0, len(weatherInfos))
	for code := range weatherInfos {
		codes = append(codes, code)
	}
	return codes
}
