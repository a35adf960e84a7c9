package weather

import "context"

type Info struct {
	Temp      float64 `json:"temp"`
	Condition string  `json:"condition"`
	Forecast  string  `json:"forecast"`
}

type Provider interface {
	Current(ctx context.Context) (Info, error)
}

// StaticProvider reports the same conditions on every call.
type StaticProvider struct{}

func (StaticProvider) Current(ctx context.Context) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}
	return Default(), nil
}

// Default is shown when no provider answers.
func Default() Info {
	return Info{Temp: 32, Condition: "Sunny", Forecast: "Rain expected in 2 days"}
}
