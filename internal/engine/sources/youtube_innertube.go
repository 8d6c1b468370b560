package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Innertube player API: constants, response types and the ANDROID /player request.

const (
	ytInnertubePlayerURL = "https://www.youtube.com/youtubei/v1/player"
	ytAndroidVersion     = "20.10.38"
	ytAndroidUA          = "com.google.android.youtube/" + ytAndroidVersion + " (Linux; U; Android 11) gzip"
)

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

// playerResponse is the subset of ytInitialPlayerResponse / innertube /player we read.
type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *playabilityStatus `json:"playabilityStatus"`
	VideoDetails      *struct {
		VideoID string `json:"videoId"`
		Title   string `json:"title"`
	} `json:"videoDetails"`
}

type playabilityStatus struct {
	Status      string       `json:"status"`
	Reason      string       `json:"reason"`
	ErrorScreen *errorScreen `json:"errorScreen"`
}

type errorScreen struct {
	PlayerErrorMessageRenderer *struct {
		Subreason *textRuns `json:"subreason"`
	} `json:"playerErrorMessageRenderer"`
}

func (e *errorScreen) subreason() string {
	if e == nil || e.PlayerErrorMessageRenderer == nil || e.PlayerErrorMessageRenderer.Subreason == nil {
		return ""
	}
	return e.PlayerErrorMessageRenderer.Subreason.String()
}

type captionTrack struct {
	BaseURL        string   `json:"baseUrl"`
	Name           textRuns `json:"name"`
	LanguageCode   string   `json:"languageCode"`
	Kind           string   `json:"kind"` // "asr" = auto-generated
	IsTranslatable bool     `json:"isTranslatable"`
}

// textRuns covers both text encodings YouTube uses: {"simpleText": ...} and {"runs": [...]}.
type textRuns struct {
	SimpleText string    `json:"simpleText"`
	Runs       []textRun `json:"runs"`
}

type textRun struct {
	Text string `json:"text"`
}

func (t textRuns) String() string {
	if t.SimpleText != "" {
		return t.SimpleText
	}
	var sb strings.Builder
	for _, r := range t.Runs {
		sb.WriteString(r.Text)
	}
	return sb.String()
}

func (p *playerResponse) tracks() []captionTrack {
	if p == nil || p.Captions == nil {
		return nil
	}
	return p.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
}

// fetchAndroidPlayer queries the ANDROID innertube /player endpoint.
// Works from IPs where the WEB watch page omits captions.
func (y *YouTube) fetchAndroidPlayer(ctx context.Context, videoID string) (*playerResponse, error) {
	header := http.Header{}
	header.Set("User-Agent", ytAndroidUA)
	header.Set("X-Youtube-Client-Name", "3")
	header.Set("X-Youtube-Client-Version", ytAndroidVersion)

	data, err := y.fetcher.PostJSON(ctx, y.playerURL+"?prettyPrint=false", header, innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                "en",
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, fmt.Errorf("android innertube: %w", err)
	}

	var resp playerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return &resp, nil
}
