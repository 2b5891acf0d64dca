package store

import "github.com/amishk599/jobscrapper/internal/model"

// NopCache never stores anything, so every search hits the sources.
type NopCache struct{}

func NewNopCache() *NopCache { return &NopCache{} }

func (c *NopCache) Get(keyword string) ([]model.Job, bool) { return nil, false }
func (c *NopCache) Put(keyword string, jobs []model.Job)   {}
