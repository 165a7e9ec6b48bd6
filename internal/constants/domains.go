package constants

// AllowedDownloadDomains is the allow-list a candidate link must match before
// it becomes a DownloadLink. Anything else is silently dropped.
var AllowedDownloadDomains = []string{
	"hubcloud",
	"vcloud",
	"gdflix",
	"gdtot",
	"filepress",
	"filebee",
	"driveseed",
	"driveleech",
	"fastdl",
	"pixeldrain",
	"gofile",
	"streamtape",
	"vidstream",
	"hubstream",
	"mega.nz",
	"drive.google.com",
	"workers.dev",
}

// StreamingServers lists classified server names that imply playable streams
// rather than downloads.
var StreamingServers = []string{
	"Streamtape",
	"Vidstream",
	"HubStream",
	"Worker Stream",
}

// TrustedScreenshotHosts mark image gallery hosts whose screenshots are
// preferred wholesale over images found elsewhere on a page.
var TrustedScreenshotHosts = []string{
	"imgbb.co",
	"ibb.co",
	"postimg.cc",
	"imgbox.com",
	"catbox.moe",
}

// BotChallengeSignatures identify interstitial protection pages that must be
// treated as fetch failures even when they arrive with a 200 status.
var BotChallengeSignatures = []string{
	"Checking your browser before accessing",
	"cf-browser-verification",
	"cf_chl_opt",
	"Just a moment...",
	"DDoS protection by",
	"challenge-platform",
	"Verifying you are human",
}
