package scraper

import (
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// Record is one scraped practice, shaped to match the importer's input.
type Record struct {
	URL         string   `json:"url"`
	Name        string   `json:"name"`
	Website     string   `json:"website"`
	Socials     []string `json:"socials"`
	Email       string   `json:"email"`
	Address     string   `json:"address"`
	Contact     string   `json:"contact"`
	Description string   `json:"description"`
	YearsActive string   `json:"years_active"`
	Staff       string   `json:"staff"`
	Awards      []string `json:"awards"`
}

var (
	addressRe     = regexp.MustCompile(`(?i)Address\s+(.+?)(?:\s*Contact|$)`)
	yearsActiveRe = regexp.MustCompile(`(?i)Years active[:\s]*(\d+)`)
	staffRe       = regexp.MustCompile(`(?i)Professional staff[:\s]*([\d][\d\s\-+]*)`)
	staffAvgRe    = regexp.MustCompile(`\(Avg[^)]*\)`)
)

// extractPracticeLinks pulls practice page URLs out of a listing page,
// normalized (absolute, no query or fragment, no trailing slash) and deduped
// in document order.
func extractPracticeLinks(doc *html.Node, base string) []string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil
	}

	seen := map[string]struct{}{}
	var out []string
	for _, a := range findAllElements(doc, "a") {
		href := attr(a, "href")
		if href == "" || !strings.Contains(href, "/practice/") {
			continue
		}
		href = strings.SplitN(href, "?", 2)[0]
		href = strings.SplitN(href, "#", 2)[0]
		ref, err := url.Parse(href)
		if err != nil {
			continue
		}
		resolved := strings.TrimRight(baseURL.ResolveReference(ref).String(), "/")
		if _, ok := seen[resolved]; ok {
			continue
		}
		seen[resolved] = struct{}{}
		out = append(out, resolved)
	}
	return out
}

// parsePractice extracts a practice record from its detail page.
func parsePractice(pageURL string, doc *html.Node) Record {
	rec := Record{
		URL:     pageURL,
		Socials: []string{},
		Awards:  []string{},
	}

	rec.Name = nameFromSlug(pageURL)
	if rec.Name == "" {
		if h1 := findElement(doc, "h1"); h1 != nil {
			rec.Name = textContent(h1)
		} else if h2 := findElement(doc, "h2"); h2 != nil {
			rec.Name = textContent(h2)
		}
	}

	// Scope to the main content when present; headers and footers carry
	// directory-wide links we must not mistake for practice data.
	searchRoot := doc
	if main := findElement(doc, "main"); main != nil {
		searchRoot = main
	} else if article := findElement(doc, "article"); article != nil {
		searchRoot = article
	}

	copyWrapper := findByClass(searchRoot, "description__copy-wrapper")
	if copyWrapper != nil {
		rec.Description = extractDescription(copyWrapper)
	}

	if contacts := findByClass(searchRoot, "description__contacts"); contacts != nil {
		blockText := textContent(contacts)
		if m := addressRe.FindStringSubmatch(blockText); m != nil {
			if addr := strings.TrimSpace(m[1]); len(addr) > 5 {
				rec.Address = addr
			}
		}
		rec.Contact, rec.Email = extractMailto(contacts)
		collectLinks(contacts, &rec)
	}
	if copyWrapper != nil {
		collectLinks(copyWrapper, &rec)
	}

	pageText := textContent(doc)
	if m := yearsActiveRe.FindStringSubmatch(pageText); m != nil {
		rec.YearsActive = m[1]
	}
	if m := staffRe.FindStringSubmatch(pageText); m != nil {
		staff := staffAvgRe.ReplaceAllString(m[1], "")
		rec.Staff = strings.Join(strings.Fields(staff), " ")
	}

	return rec
}

// nameFromSlug turns /practice/hugh-broughton-architects into
// "Hugh Broughton Architects".
func nameFromSlug(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	path := u.Path
	idx := strings.Index(path, "/practice/")
	if idx < 0 {
		return ""
	}
	slug := strings.Trim(path[idx+len("/practice/"):], "/")
	if slug == "" {
		return ""
	}

	words := strings.Split(slug, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// extractDescription joins the copy-wrapper paragraphs, skipping link labels
// the markup mixes into the copy.
func extractDescription(wrapper *html.Node) string {
	skip := map[string]struct{}{"website": {}, "email": {}, "back to results": {}}

	var parts []string
	seen := map[string]struct{}{}
	for _, p := range findAllElements(wrapper, "p") {
		text := textContent(p)
		if len(text) <= 10 {
			continue
		}
		if _, ok := skip[strings.ToLower(text)]; ok {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		parts = append(parts, text)
	}
	if len(parts) > 0 {
		return strings.Join(parts, " ")
	}

	// No paragraph markup: fall back to the whole block's text.
	full := textContent(wrapper)
	for _, label := range []string{"Website", "Email", "Back to Results"} {
		full = strings.ReplaceAll(full, label, "")
	}
	full = strings.Join(strings.Fields(full), " ")
	if len(full) > 20 {
		return full
	}
	return ""
}

// extractMailto returns the contact name (mailto link text without an @) and
// the first email that is not the directory's own.
func extractMailto(block *html.Node) (contact, email string) {
	for _, a := range findAllElements(block, "a") {
		href := attr(a, "href")
		if !strings.HasPrefix(href, "mailto:") {
			continue
		}
		text := textContent(a)
		if contact == "" && text != "" && !strings.Contains(text, "@") && len(text) > 1 {
			contact = text
		}
		addr := strings.TrimSpace(strings.TrimPrefix(href, "mailto:"))
		if email == "" && addr != "" && !strings.Contains(strings.ToLower(addr), directoryHost) {
			email = addr
		}
	}
	return contact, email
}

// collectLinks sorts a block's outbound links into socials and, if none is
// set yet, the practice website.
func collectLinks(block *html.Node, rec *Record) {
	seen := map[string]struct{}{}
	for _, s := range rec.Socials {
		seen[s] = struct{}{}
	}
	for _, a := range findAllElements(block, "a") {
		href := strings.TrimSpace(attr(a, "href"))
		if !strings.HasPrefix(href, "http") {
			continue
		}
		if isSocialURL(href) {
			if _, ok := seen[href]; !ok {
				seen[href] = struct{}{}
				rec.Socials = append(rec.Socials, href)
			}
		} else if rec.Website == "" && isWebsiteCandidate(href) {
			rec.Website = href
		}
	}
}
