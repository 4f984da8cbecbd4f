// Package websearch retrieves fresh evidence from the web. Tavily is the
// primary provider; DuckDuckGo's HTML endpoint serves as a keyless
// fallback. Both return the same Result shape so the workflow treats
// them interchangeably.
package websearch
