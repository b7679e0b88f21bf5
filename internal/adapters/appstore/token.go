package appstore

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"golang.org/x/net/html"
)

// envConfigMetaName is the meta tag the storefront web app embeds its
// environment config into. The tag's content attribute is a URL-encoded
// JSON blob carrying, among other things, the media API bearer token.
const envConfigMetaName = "web-experience-app/config/environment"

type envConfig struct {
	MediaAPI struct {
		Token string `json:"token"`
	} `json:"MEDIA_API"`
}

// tokenFromLandingPage extracts the media API token from an app landing
// page. Any missing piece (meta tag, decodable blob, token field) means the
// upstream page changed shape and authorization cannot proceed.
func tokenFromLandingPage(body io.Reader) (string, error) {
	doc, err := html.Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse landing page: %v", err)
	}

	content, ok := findMetaContent(doc, envConfigMetaName)
	if !ok {
		return "", fmt.Errorf("no %q meta tag in landing page", envConfigMetaName)
	}

	raw, err := url.QueryUnescape(content)
	if err != nil {
		return "", fmt.Errorf("undecodable environment config: %v", err)
	}

	var cfg envConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return "", fmt.Errorf("environment config is not JSON: %v", err)
	}
	if cfg.MediaAPI.Token == "" {
		return "", fmt.Errorf("environment config has no MEDIA_API.token")
	}
	return cfg.MediaAPI.Token, nil
}

func findMetaContent(n *html.Node, name string) (string, bool) {
	if n.Type == html.ElementNode && n.Data == "meta" {
		var metaName, content string
		for _, a := range n.Attr {
			switch a.Key {
			case "name":
				metaName = a.Val
			case "content":
				content = a.Val
			}
		}
		if metaName == name {
			return content, true
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if v, ok := findMetaContent(c, name); ok {
			return v, true
		}
	}
	return "", false
}
