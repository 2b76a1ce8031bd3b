// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package seo

import (
	"html/template"
	"strconv"
)

// ServiceSchema represents JSON-LD ProfessionalService structured data.
type ServiceSchema struct {
	Context         string           `json:"@context"`
	Type            string           `json:"@type"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	URL             string           `json:"url,omitempty"`
	Image           string           `json:"image,omitempty"`
	Telephone       string           `json:"telephone,omitempty"`
	Email           string           `json:"email,omitempty"`
	Address         *AddressSchema   `json:"address,omitempty"`
	Founder         *PersonSchema    `json:"founder,omitempty"`
	OpeningHours    []string         `json:"openingHours,omitempty"`
	AggregateRating *RatingSchema    `json:"aggregateRating,omitempty"`
	Offers          []OfferSchema    `json:"makesOffer,omitempty"`
	SameAs          []string         `json:"sameAs,omitempty"`
	Area            *AreaServedEntry `json:"areaServed,omitempty"`
}

// PersonSchema represents JSON-LD Person structured data.
type PersonSchema struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// AddressSchema represents a JSON-LD PostalAddress with only a locality.
type AddressSchema struct {
	Type     string `json:"@type"`
	Locality string `json:"addressLocality"`
}

// AreaServedEntry names the served area.
type AreaServedEntry struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

// RatingSchema represents JSON-LD AggregateRating.
type RatingSchema struct {
	Type        string `json:"@type"`
	RatingValue string `json:"ratingValue"`
	ReviewCount int    `json:"reviewCount"`
	BestRating  int    `json:"bestRating"`
}

// OfferSchema is one priced service.
type OfferSchema struct {
	Type          string      `json:"@type"`
	Price         string      `json:"price"`
	PriceCurrency string      `json:"priceCurrency"`
	ItemOffered   ItemOffered `json:"itemOffered"`
}

// ItemOffered describes the service behind an offer.
type ItemOffered struct {
	Type        string `json:"@type"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Practice holds the facts the ProfessionalService schema is built from.
type Practice struct {
	Name          string
	Description   string
	URL           string
	Image         string
	Phone         string
	Email         string
	Location      string
	Counselor     string
	Hours         []string
	Ratings       []int
	BestRating    int
	Services      []Offer
	SameAs        []string
	PriceCurrency string
}

// Offer is a service with a whole-unit price.
type Offer struct {
	Name        string
	Description string
	Price       int
}

// BuildServiceSchema creates JSON-LD ProfessionalService data for the home page.
func BuildServiceSchema(p Practice) template.JS {
	s := ServiceSchema{
		Context:      "https://schema.org",
		Type:         "ProfessionalService",
		Name:         p.Name,
		Description:  p.Description,
		URL:          p.URL,
		Telephone:    p.Phone,
		Email:        p.Email,
		OpeningHours: p.Hours,
		SameAs:       p.SameAs,
	}

	if p.Image != "" {
		s.Image = absoluteURL(p.Image, p.URL)
	}
	if p.Location != "" {
		s.Address = &AddressSchema{Type: "PostalAddress", Locality: p.Location}
		s.Area = &AreaServedEntry{Type: "Place", Name: p.Location}
	}
	if p.Counselor != "" {
		s.Founder = &PersonSchema{Type: "Person", Name: p.Counselor}
	}

	if len(p.Ratings) > 0 {
		sum := 0
		for _, r := range p.Ratings {
			sum += r
		}
		best := p.BestRating
		if best == 0 {
			best = 5
		}
		s.AggregateRating = &RatingSchema{
			Type:        "AggregateRating",
			RatingValue: strconv.FormatFloat(float64(sum)/float64(len(p.Ratings)), 'f', 1, 64),
			ReviewCount: len(p.Ratings),
			BestRating:  best,
		}
	}

	currency := p.PriceCurrency
	if currency == "" {
		currency = "USD"
	}
	for _, o := range p.Services {
		s.Offers = append(s.Offers, OfferSchema{
			Type:          "Offer",
			Price:         strconv.Itoa(o.Price),
			PriceCurrency: currency,
			ItemOffered: ItemOffered{
				Type:        "Service",
				Name:        o.Name,
				Description: o.Description,
			},
		})
	}

	return marshalJSONLD(s)
}

// BreadcrumbSchema represents JSON-LD BreadcrumbList structured data.
type BreadcrumbSchema struct {
	Context  string           `json:"@context"`
	Type     string           `json:"@type"`
	ItemList []BreadcrumbItem `json:"itemListElement"`
}

// BreadcrumbItem represents a single breadcrumb item.
type BreadcrumbItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	Item     string `json:"item,omitempty"`
}

// Crumb is one step of a breadcrumb trail. The last crumb has no URL.
type Crumb struct {
	Name string
	Path string
}

// BuildBreadcrumbSchema creates JSON-LD BreadcrumbList data for a secondary page.
func BuildBreadcrumbSchema(siteURL string, crumbs []Crumb) template.JS {
	if len(crumbs) == 0 {
		return ""
	}

	list := BreadcrumbSchema{
		Context:  "https://schema.org",
		Type:     "BreadcrumbList",
		ItemList: make([]BreadcrumbItem, 0, len(crumbs)),
	}
	for i, c := range crumbs {
		item := BreadcrumbItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     c.Name,
		}
		if c.Path != "" {
			item.Item = absoluteURL(c.Path, siteURL)
		}
		list.ItemList = append(list.ItemList, item)
	}

	return marshalJSONLD(list)
}
