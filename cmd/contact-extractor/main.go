// Package main provides the entry point for the contact-extractor CLI.
//
// contact-extractor crawls a handful of pages on a website and extracts
// contact information: email addresses, phone numbers, WhatsApp links,
// social media profiles, names and postal addresses.
//
// Usage:
//
//	contact-extractor extract <url> [url...]
//	contact-extractor serve --addr :8000
//
// See --help for all available options.
package main

func main() {
	Execute()
}
