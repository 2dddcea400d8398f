package firecrawl

// Version is reported to the API through the `origin` field of every
// POST payload.
const Version = "0.4.1"

const origin = "go-sdk@" + Version
