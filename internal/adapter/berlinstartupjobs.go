package adapter

import (
	"net/url"

	"github.com/PuerkitoBio/goquery"

	"github.com/amishk599/jobscrapper/internal/model"
)

const (
	// SourceBerlinStartupJobs is the source key for berlinstartupjobs.com.
	SourceBerlinStartupJobs = "berlinstartupjobs"

	berlinStartupJobsBaseURL = "https://berlinstartupjobs.com/"
)

// BerlinStartupJobs scrapes the skill-area listing pages of
// berlinstartupjobs.com, following the "next" link until there is none.
type BerlinStartupJobs struct {
	baseURL string
}

// NewBerlinStartupJobs creates the berlinstartupjobs.com source.
func NewBerlinStartupJobs() *BerlinStartupJobs {
	return &BerlinStartupJobs{baseURL: berlinStartupJobsBaseURL}
}

func (s *BerlinStartupJobs) Name() string { return SourceBerlinStartupJobs }

// StartURL appends the keyword as a path segment under /skill-areas/.
func (s *BerlinStartupJobs) StartURL(keyword string) string {
	return CombineURL(s.baseURL, "skill-areas/"+url.PathEscape(keyword))
}

// Extract reads every li.bjs-jlid listing. Listings without a title are dropped.
func (s *BerlinStartupJobs) Extract(doc *goquery.Document) []model.Job {
	var jobs []model.Job
	doc.Find("li.bjs-jlid").Each(func(_ int, li *goquery.Selection) {
		titleTag := li.Find(".bjs-jlid__h a").First()
		title := extractText(titleTag)
		if title == "" {
			return
		}
		href, _ := titleTag.Attr("href")

		jobs = append(jobs, model.Job{
			Position:    title,
			Company:     extractText(li.Find(".bjs-jlid__b").First()),
			Condition:   orDefault(joinTexts(li.Find(".bjs-bl.bjs-bl-porcelain")), notAvailable),
			Link:        CombineURL(s.baseURL, href),
			Source:      SourceBerlinStartupJobs,
			Description: extractText(li.Find(".bjs-jlid__description").First()),
		})
	})
	return jobs
}

// Next follows a.next.page-numbers when it carries an href.
func (s *BerlinStartupJobs) Next(doc *goquery.Document, _ string, _ []model.Job) (string, bool) {
	href, ok := doc.Find("a.next.page-numbers").First().Attr("href")
	if !ok || href == "" {
		return "", false
	}
	return CombineURL(s.baseURL, href), true
}
