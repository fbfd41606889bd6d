package panel

import (
	"github.com/bobby-s-dev/weather-map/internal/meteo"
	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/bobby-s-dev/weather-map/internal/state"
	"golang.org/x/text/language"
)

// Messages is one translation table.
type Messages struct {
	Weather           string
	SelectLocation    string
	Temperature       string
	FeelsLike         string
	Humidity          string
	Pressure          string
	Wind              string
	Condition         string
	SearchPlaceholder string
	FindMe            string
	Language          string
	Settings          string
	ShowDetails       string
	ViewWeather       string
	Distance          string
	NextHours         string
	Forecast          string
	Visibility        string
	WindDirection     string
	DewPoint          string
	SunInfo           string
	Sunrise           string
	Sunset            string
	DayLength         string
	Hours             string
	Minutes           string
	LocalTime         string
	TotalDaylight     string
	WeatherTrend      string
	TemperatureTrend  string
	WindTrend         string
	PressureTrend     string
	Change            string
	CloudCover        string
	CloudLevel        string
	HourlyTemp        string
	PrecipitationProb string
	Precipitation     string
	WindSpeed         string

	TrendLabels      map[meteo.TrendDirection]string
	VisibilityLevels map[meteo.VisibilityLevel]string
	CloudLevels      map[meteo.CloudLevel]string
	PressureLevels   map[meteo.PressureLevel]string
	ErrorMessages    map[state.ErrorKind]string
}

var english = Messages{
	Weather:           "Weather",
	SelectLocation:    "Please select a location on the map or search",
	Temperature:       "Temperature",
	FeelsLike:         "Feels Like",
	Humidity:          "Humidity",
	Pressure:          "Pressure",
	Wind:              "Wind",
	Condition:         "Condition",
	SearchPlaceholder: "Search city...",
	FindMe:            "Find Me",
	Language:          "Language",
	Settings:          "Settings",
	ShowDetails:       "Show Details",
	ViewWeather:       "View Weather",
	Distance:          "Distance",
	NextHours:         "Next 24 Hours",
	Forecast:          "Detailed Weather",
	Visibility:        "Visibility",
	WindDirection:     "Wind Direction",
	DewPoint:          "Dew Point",
	SunInfo:           "Sun Information",
	Sunrise:           "Sunrise",
	Sunset:            "Sunset",
	DayLength:         "Day Length",
	Hours:             "h",
	Minutes:           "min",
	LocalTime:         "local time",
	TotalDaylight:     "total daylight",
	WeatherTrend:      "Weather Trends",
	TemperatureTrend:  "Temperature Trend",
	WindTrend:         "Wind Trend",
	PressureTrend:     "Pressure Trend",
	Change:            "change",
	CloudCover:        "Cloud Cover",
	CloudLevel:        "Cloud Level",
	HourlyTemp:        "Hourly Temperature",
	PrecipitationProb: "Precipitation Probability",
	Precipitation:     "Precip.",
	WindSpeed:         "Wind Speed",
	TrendLabels: map[meteo.TrendDirection]string{
		meteo.Rising:  "Rising",
		meteo.Falling: "Falling",
		meteo.Stable:  "Stable",
	},
	VisibilityLevels: map[meteo.VisibilityLevel]string{
		meteo.VisibilityExcellent: "Excellent",
		meteo.VisibilityGood:      "Good",
		meteo.VisibilityModerate:  "Moderate",
	},
	CloudLevels: map[meteo.CloudLevel]string{
		meteo.CloudClear:     "Clear",
		meteo.CloudFew:       "Few Clouds",
		meteo.CloudScattered: "Scattered Clouds",
		meteo.CloudBroken:    "Broken Clouds",
		meteo.CloudOvercast:  "Overcast",
	},
	PressureLevels: map[meteo.PressureLevel]string{
		meteo.PressureHigh:   "High",
		meteo.PressureNormal: "Normal",
		meteo.PressureLow:    "Low",
	},
	ErrorMessages: map[state.ErrorKind]string{
		state.NetworkFailure:    "Could not fetch weather data",
		state.GeolocationDenied: "Could not get location",
		state.SearchFailed:      "Search failed",
	},
}

var turkish = Messages{
	Weather:           "Hava Durumu",
	SelectLocation:    "Lütfen haritada bir konum seçin veya arama yapın",
	Temperature:       "Sıcaklık",
	FeelsLike:         "Hissedilen",
	Humidity:          "Nem",
	Pressure:          "Basınç",
	Wind:              "Rüzgar",
	Condition:         "Durum",
	SearchPlaceholder: "Şehir ara...",
	FindMe:            "Konumumu Bul",
	Language:          "Dil",
	Settings:          "Ayarlar",
	ShowDetails:       "Detayları Göster",
	ViewWeather:       "Hava Durumunu Gör",
	Distance:          "Uzaklık",
	NextHours:         "Sonraki 24 Saat",
	Forecast:          "Detaylı Hava Durumu",
	Visibility:        "Görüş Mesafesi",
	WindDirection:     "Rüzgar Yönü",
	DewPoint:          "Çiğ Noktası",
	SunInfo:           "Güneş Bilgileri",
	Sunrise:           "Gün Doğumu",
	Sunset:            "Gün Batımı",
	DayLength:         "Gün Uzunluğu",
	Hours:             "sa",
	Minutes:           "dk",
	LocalTime:         "yerel saat",
	TotalDaylight:     "toplam gün ışığı",
	WeatherTrend:      "Hava Durumu Trendleri",
	TemperatureTrend:  "Sıcaklık Trendi",
	WindTrend:         "Rüzgar Trendi",
	PressureTrend:     "Basınç Trendi",
	Change:            "değişim",
	CloudCover:        "Bulut Örtüsü",
	CloudLevel:        "Bulut Seviyesi",
	HourlyTemp:        "Saatlik Sıcaklık",
	PrecipitationProb: "Yağış Olasılığı",
	Precipitation:     "Yağış",
	WindSpeed:         "Rüzgar Hızı",
	TrendLabels: map[meteo.TrendDirection]string{
		meteo.Rising:  "Yükseliyor",
		meteo.Falling: "Düşüyor",
		meteo.Stable:  "Stabil",
	},
	VisibilityLevels: map[meteo.VisibilityLevel]string{
		meteo.VisibilityExcellent: "Mükemmel",
		meteo.VisibilityGood:      "İyi",
		meteo.VisibilityModerate:  "Orta",
	},
	CloudLevels: map[meteo.CloudLevel]string{
		meteo.CloudClear:     "Açık",
		meteo.CloudFew:       "Az Bulutlu",
		meteo.CloudScattered: "Parçalı Bulutlu",
		meteo.CloudBroken:    "Çok Bulutlu",
		meteo.CloudOvercast:  "Kapalı",
	},
	PressureLevels: map[meteo.PressureLevel]string{
		meteo.PressureHigh:   "Yüksek",
		meteo.PressureNormal: "Normal",
		meteo.PressureLow:    "Düşük",
	},
	ErrorMessages: map[state.ErrorKind]string{
		state.NetworkFailure:    "Hava durumu verisi alınamadı",
		state.GeolocationDenied: "Konum alınamadı",
		state.SearchFailed:      "Arama başarısız oldu",
	},
}

// For returns the table for lang, falling back to English.
func For(lang state.Lang) Messages {
	if lang == state.LangTR {
		return turkish
	}
	return english
}

// ErrorMessage renders e for the user. Detail, when present, follows the
// localized text.
func (m Messages) ErrorMessage(e *state.UserError) string {
	if e == nil {
		return ""
	}
	msg := m.ErrorMessages[e.Kind]
	if e.Detail != "" && e.Kind == state.GeolocationDenied {
		msg += ": " + e.Detail
	}
	return msg
}

func LocalizedName(n models.LocalizedName, lang state.Lang) string {
	if lang == state.LangTR && n.TR != "" {
		return n.TR
	}
	return n.EN
}

var supportedLanguages = []language.Tag{language.English, language.Turkish}

var languageMatcher = language.NewMatcher(supportedLanguages)

// MatchLanguage picks the best supported language for an Accept-Language
// header. Anything unmatched falls back to English.
func MatchLanguage(acceptLanguage string) state.Lang {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return state.LangEN
	}
	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No || index != 1 {
		return state.LangEN
	}
	return state.LangTR
}
