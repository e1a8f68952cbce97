package models

import (
	"testing"
	"time"

	"github.com/silinternational/terra/domain"
)

func (ms *ModelSuite) TestActivity_Country() {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name              string
		country           string
		wantInternational bool
	}{
		{name: "home country", country: domain.Env.HomeCountry, wantInternational: false},
		{name: "long country name", country: "Democratic Republic of the Congo", wantInternational: true},
		{name: "short country name", country: "Peru", wantInternational: true},
	}
	for _, tt := range tests {
		ms.T().Run(tt.name, func(t *testing.T) {
			a := Activity{
				Name:    "Code4Lib " + randStr(6),
				Start:   start,
				End:     start.Add(domain.DurationDay * 3),
				City:    "Ann Arbor",
				Country: tt.country,
			}
			ms.NoError(a.Create(ms.DB))

			var got Activity
			ms.NoError(got.FindByID(ms.DB, a.ID))
			ms.Equal(tt.country, got.Country)
			ms.Equal(tt.wantInternational, got.IsInternational())
		})
	}
}
