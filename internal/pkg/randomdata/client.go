package randomdata

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	defaultRandomUserURL = "https://randomuser.me/api/"
	defaultRandommerURL  = "https://randommer.io/api"
	defaultTimeout       = 10 * time.Second
)

// Config carries the injected settings for the random-data providers.
type Config struct {
	APIKey            string // randommer.io X-Api-Key
	RandomUserBaseURL string
	RandommerBaseURL  string
	Timeout           time.Duration
}

// Client fans out to the third-party random-data APIs.
type Client struct {
	httpClient        *http.Client
	apiKey            string
	randomUserBaseURL string
	randommerBaseURL  string
}

func NewClient(cfg Config) *Client {
	if cfg.RandomUserBaseURL == "" {
		cfg.RandomUserBaseURL = defaultRandomUserURL
	}
	if cfg.RandommerBaseURL == "" {
		cfg.RandommerBaseURL = defaultRandommerURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		httpClient:        &http.Client{Timeout: cfg.Timeout},
		apiKey:            cfg.APIKey,
		randomUserBaseURL: cfg.RandomUserBaseURL,
		randommerBaseURL:  cfg.RandommerBaseURL,
	}
}

// RandomUser is the flattened view of a randomuser.me result.
type RandomUser struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	Nationality string `json:"nationality"`
	Country     string `json:"country"`
	Picture     string `json:"picture"`
}

type randomUserResponse struct {
	Results []struct {
		Name struct {
			First string `json:"first"`
			Last  string `json:"last"`
		} `json:"name"`
		Email    string `json:"email"`
		Gender   string `json:"gender"`
		Nat      string `json:"nat"`
		Location struct {
			Country string `json:"country"`
		} `json:"location"`
		Picture struct {
			Large string `json:"large"`
		} `json:"picture"`
	} `json:"results"`
}

// RandomUser fetches one random user, forwarding the optional gender and
// nationality filters.
func (c *Client) RandomUser(gender, nat string) (*RandomUser, error) {
	reqURL := c.randomUserBaseURL
	params := url.Values{}
	if gender != "" {
		params.Set("gender", gender)
	}
	if nat != "" {
		params.Set("nat", nat)
	}
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	var response randomUserResponse
	if err := c.getJSON(reqURL, false, &response); err != nil {
		return nil, err
	}
	if len(response.Results) == 0 {
		return nil, fmt.Errorf("randomuser: empty result set")
	}

	r := response.Results[0]
	return &RandomUser{
		Name:        fmt.Sprintf("%s %s", r.Name.First, r.Name.Last),
		Email:       r.Email,
		Gender:      r.Gender,
		Nationality: r.Nat,
		Country:     r.Location.Country,
		Picture:     r.Picture.Large,
	}, nil
}

// Generated bundles the merged output of a full provider fan-out.
type Generated struct {
	User         *RandomUser
	Phone        any
	IBAN         any
	Card         any
	FullName     any
	SocialNumber any
}

// Generate calls all providers in parallel and merges the results. The first
// upstream failure cancels the batch.
func (c *Client) Generate() (*Generated, error) {
	out := &Generated{}

	var g errgroup.Group
	g.Go(func() error {
		user, err := c.RandomUser("", "")
		out.User = user
		return err
	})
	g.Go(func() error {
		return c.getJSON(c.randommerBaseURL+"/Phone/Generate?CountryCode=FR&Quantity=1", true, &out.Phone)
	})
	g.Go(func() error {
		return c.getJSON(c.randommerBaseURL+"/Finance/Iban/FR", true, &out.IBAN)
	})
	g.Go(func() error {
		return c.getJSON(c.randommerBaseURL+"/Card?type=AmericanExpress", true, &out.Card)
	})
	g.Go(func() error {
		return c.getJSON(c.randommerBaseURL+"/Name?nameType=fullname&quantity=1", true, &out.FullName)
	})
	g.Go(func() error {
		return c.getJSON(c.randommerBaseURL+"/SocialNumber", true, &out.SocialNumber)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) getJSON(reqURL string, withAPIKey bool, out any) error {
	req, err := http.NewRequest(http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if withAPIKey {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", reqURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request to %s failed with status %d", reqURL, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", reqURL, err)
	}
	return nil
}
