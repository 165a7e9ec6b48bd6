package constants

// CORSProxyTemplates lists third-party proxy endpoints in fixed priority
// order. %s is replaced with the URL-encoded target. Providers rotate and
// disappear; the chain order is the stable contract, not the providers.
var CORSProxyTemplates = []string{
	"https://api.allorigins.win/raw?url=%s",
	"https://corsproxy.io/?%s",
	"https://api.codetabs.com/v1/proxy?quest=%s",
}

// ScrapeServiceDomains lists target-site hosts that may fall back to the
// external scraping microservice when every proxy fails.
var ScrapeServiceDomains = []string{
	"vegamovies",
	"rogmovies",
	"luxmovies",
	"moviesflix",
	"hdhub4u",
}
