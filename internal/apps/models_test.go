package apps

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want AppID
		num  int64
	}{
		{name: "number", raw: `42`, want: "42", num: 42},
		{name: "string", raw: `"17"`, want: "17", num: 17},
		{name: "padded string", raw: `" 9 "`, want: "9", num: 9},
		{name: "leading digits", raw: `"12abc"`, want: "12abc", num: 12},
		{name: "float", raw: `3.7`, want: "3.7", num: 3},
		{name: "negative", raw: `"-4"`, want: "-4", num: -4},
		{name: "non numeric", raw: `"abc"`, want: "abc", num: 0},
		{name: "null", raw: `null`, want: "", num: 0},
		{name: "boolean", raw: `true`, want: "true", num: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id AppID
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &id))
			assert.Equal(t, tt.want, id)
			assert.Equal(t, tt.num, id.Int())
		})
	}
}

func TestCategories_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Categories
		primary string
	}{
		{name: "absent", raw: `{}`, want: nil, primary: "other"},
		{name: "null", raw: `{"categories":null}`, want: nil, primary: "other"},
		{name: "single string", raw: `{"categories":"games"}`, want: Categories{"games"}, primary: "games"},
		{name: "delimited string", raw: `{"categories":"tools, media"}`, want: Categories{"tools", "media"}, primary: "tools"},
		{name: "empty string", raw: `{"categories":""}`, want: nil, primary: "other"},
		{name: "array", raw: `{"categories":["social","chat"]}`, want: Categories{"social", "chat"}, primary: "social"},
		{name: "mixed array", raw: `{"categories":[2024,"games",null,true]}`, want: Categories{"2024", "games", "true"}, primary: "2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var app App
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &app))
			assert.Equal(t, tt.want, app.Categories)
			assert.Equal(t, tt.primary, app.Categories.Primary())
		})
	}
}

func TestApp_UnmarshalJSONScalars(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want App
	}{
		{
			name: "strings",
			raw:  `{"id":1,"name":"A","description":"d","image":"https://x/y.png","updatedate":"2024-03-05"}`,
			want: App{ID: "1", Name: "A", Description: "d", Image: "https://x/y.png", UpdateDate: "2024-03-05"},
		},
		{
			name: "epoch millisecond date",
			raw:  `{"id":2,"name":"B","updatedate":1700000000000}`,
			want: App{ID: "2", Name: "B", UpdateDate: "1700000000000"},
		},
		{
			name: "numeric name",
			raw:  `{"id":3,"name":12345,"description":42.5}`,
			want: App{ID: "3", Name: "12345", Description: "42.5"},
		},
		{
			name: "nulls and booleans",
			raw:  `{"id":"4","name":null,"image":false,"updatedate":null}`,
			want: App{ID: "4", Image: "false"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var app App
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &app))
			assert.Equal(t, tt.want, app)
		})
	}
}

func TestNormalize(t *testing.T) {
	apps := []App{
		{ID: "1", Name: "No categories"},
		{ID: "2", Name: "Tagged", Categories: Categories{"games"}},
	}

	out := Normalize(apps)

	require.Len(t, out, 2)
	assert.Equal(t, Categories{"other"}, out[0].Categories)
	assert.Equal(t, Categories{"games"}, out[1].Categories)

	// Idempotent
	assert.Equal(t, out, Normalize(out))
}

func TestApp_FirstLine(t *testing.T) {
	app := App{Description: "  First line  \r\nSecond line\nThird"}
	assert.Equal(t, "First line", app.FirstLine())

	assert.Equal(t, "", App{}.FirstLine())
}

func TestApp_CacheRoundTrip(t *testing.T) {
	raw := `{"id":7,"name":"Seven","categories":"a,b","updatedate":"2025-01-02"}`

	var app App
	require.NoError(t, json.Unmarshal([]byte(raw), &app))

	data, err := json.Marshal(app)
	require.NoError(t, err)

	var back App
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, app, back)
}
