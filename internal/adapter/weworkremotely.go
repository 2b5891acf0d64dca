package adapter

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobscrapper/internal/model"
)

const (
	// SourceWeWorkRemotely is the source key for weworkremotely.com.
	SourceWeWorkRemotely = "weworkremotely"

	// WeWorkRemotelyReadySelector marks a rendered search result page.
	WeWorkRemotelyReadySelector = "section.jobs"

	weWorkRemotelyBaseURL = "https://weworkremotely.com"
)

// WeWorkRemotely scrapes the first page of weworkremotely.com search results.
// The page is rendered client-side, so it must be fetched through a browser
// session. Only one page is ever read.
type WeWorkRemotely struct {
	baseURL string
}

// NewWeWorkRemotely creates the weworkremotely.com source.
func NewWeWorkRemotely() *WeWorkRemotely {
	return &WeWorkRemotely{baseURL: weWorkRemotelyBaseURL}
}

func (s *WeWorkRemotely) Name() string { return SourceWeWorkRemotely }

// StartURL returns the search URL with the keyword as the term parameter.
func (s *WeWorkRemotely) StartURL(keyword string) string {
	return CombineURL(s.baseURL, "/remote-jobs/search?utf8=%E2%9C%93&term="+url.QueryEscape(keyword))
}

// Extract reads every li.new-listing-container. Missing titles and companies
// become "N/A".
func (s *WeWorkRemotely) Extract(doc *goquery.Document) []model.Job {
	var jobs []model.Job
	doc.Find("li.new-listing-container").Each(func(_ int, li *goquery.Selection) {
		href, _ := li.Find("a[href^='/remote-jobs/']").First().Attr("href")

		jobs = append(jobs, model.Job{
			Position:  orDefault(extractText(li.Find("h3.new-listing__header__title").First()), notAvailable),
			Company:   orDefault(extractText(li.Find("p.new-listing__company-name").First()), notAvailable),
			Condition: joinTexts(li.Find("p.new-listing__categories__category")),
			Link:      CombineURL(s.baseURL, href),
			Source:    SourceWeWorkRemotely,
		})
	})
	return jobs
}

// Next always stops: results beyond the first page are not fetched.
func (s *WeWorkRemotely) Next(_ *goquery.Document, _ string, _ []model.Job) (string, bool) {
	return "", false
}
