// Package extract finds contact records in a page.
//
// Each category (email, phone, WhatsApp, social profile, name, address)
// is a Category: an ordered table of Rules. A Rule pairs a recognizer
// with a rejection set, a normalizer and a validity check:
//
//	Rule{
//	    Name:      "mailto",
//	    Source:    SourceHTML,
//	    Pattern:   mailtoPattern,
//	    Reject:    emailRejects,
//	    Normalize: normalizeEmail,
//	    Validate:  ValidEmail,
//	}
//
// Rules run in declared order over the visible text, the raw HTML or the
// parsed DOM. Records are deduplicated by the category's key as they are
// found, and a category stops once it holds its per-page cap.
//
// Phone numbers are formatted with github.com/nyaruka/phonenumbers for a
// configurable default region. Structured name hints such as
// <meta name="author"> are read with github.com/PuerkitoBio/goquery.
package extract
