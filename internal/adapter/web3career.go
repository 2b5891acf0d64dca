package adapter

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobscrapper/internal/model"
)

const (
	// SourceWeb3Career is the source key for web3.career.
	SourceWeb3Career = "web3career"

	web3CareerBaseURL = "https://web3.career"
)

// Web3Career scrapes the table-based keyword pages of web3.career, walking
// ?page=1,2,... until a page is empty or the "next" control is disabled.
type Web3Career struct {
	baseURL string
}

// NewWeb3Career creates the web3.career source.
func NewWeb3Career() *Web3Career {
	return &Web3Career{baseURL: web3CareerBaseURL}
}

func (s *Web3Career) Name() string { return SourceWeb3Career }

// StartURL returns {base}/{keyword}-jobs?page=1. The keyword is always a
// path segment, even when it looks like a URL scheme.
func (s *Web3Career) StartURL(keyword string) string {
	return strings.TrimRight(s.baseURL, "/") + "/" + url.PathEscape(keyword) + "-jobs?page=1"
}

// Extract reads every tr.table_row. Rows without a title are skipped.
func (s *Web3Career) Extract(doc *goquery.Document) []model.Job {
	var jobs []model.Job
	doc.Find("tr.table_row").Each(func(_ int, row *goquery.Selection) {
		title := extractText(row.Find("h2.my-primary").First())
		if title == "" {
			return
		}

		// The first location cell is the mobile duplicate; the second one
		// holds the location links.
		var locations string
		if cells := row.Find("td.job-location-mobile"); cells.Length() > 1 {
			locations = joinTexts(cells.Eq(1).Find("a"))
		}
		condition := locations
		if condition == "" {
			condition = joinTexts(row.Find("span.my-badge.my-badge-secondary"))
		}

		href, _ := row.Find("a[href]").First().Attr("href")

		jobs = append(jobs, model.Job{
			Position:  title,
			Company:   extractText(row.Find("h3").First()),
			Condition: orDefault(condition, notAvailable),
			Link:      CombineURL(s.baseURL, href),
			Source:    SourceWeb3Career,
		})
	})
	return jobs
}

// Next stops on an empty page or when li.page-item.next.disabled is present;
// otherwise it increments the page query parameter of current.
func (s *Web3Career) Next(doc *goquery.Document, current string, page []model.Job) (string, bool) {
	if len(page) == 0 {
		return "", false
	}
	if doc.Find("li.page-item.next.disabled").Length() > 0 {
		return "", false
	}

	u, err := url.Parse(current)
	if err != nil {
		return "", false
	}
	q := u.Query()
	n, err := strconv.Atoi(q.Get("page"))
	if err != nil || n < 1 {
		n = 1
	}
	q.Set("page", strconv.Itoa(n+1))
	u.RawQuery = q.Encode()
	return u.String(), true
}
