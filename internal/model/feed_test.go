package model

import (
	"testing"
	"time"
)

func TestFeed_Navigation(t *testing.T) {
	feed := NewFeed([]*Article{{Title: "one"}, {Title: "two"}, {Title: "three"}})

	if feed.Current().Title != "one" {
		t.Fatalf("Expected first article, got %s", feed.Current().Title)
	}
	if feed.Position("of") != "1 of 3" {
		t.Errorf("Expected '1 of 3', got '%s'", feed.Position("of"))
	}

	steps := []struct {
		forward  bool
		expected string
	}{
		{true, "two"},
		{true, "three"},
		{true, "one"},
		{false, "three"},
		{false, "two"},
	}

	for i, step := range steps {
		var got *Article
		if step.forward {
			got = feed.Next()
		} else {
			got = feed.Previous()
		}
		if got.Title != step.expected {
			t.Errorf("step %d: expected %s, got %s", i, step.expected, got.Title)
		}
	}

	if feed.Position("de") != "2 de 3" {
		t.Errorf("Expected '2 de 3', got '%s'", feed.Position("de"))
	}
}

func TestFeed_Empty(t *testing.T) {
	feed := NewFeed(nil)

	if !feed.IsEmpty() {
		t.Error("Expected empty feed")
	}
	if feed.Next() != nil || feed.Previous() != nil || feed.Latest() != nil {
		t.Error("Expected nil articles on empty feed")
	}
	if feed.Position("of") != "" {
		t.Error("Expected empty position on empty feed")
	}
}

func TestNewsCache(t *testing.T) {
	var empty NewsCache
	if !empty.IsEmpty() {
		t.Error("Expected zero cache to be empty")
	}
	if !empty.DateTime().IsZero() {
		t.Error("Expected zero date for empty cache")
	}

	date := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cache := NewNewsCache(date, "abc")
	if cache.IsEmpty() {
		t.Error("Expected populated cache")
	}
	if !cache.DateTime().Equal(date) {
		t.Errorf("Expected %s, got %s", date, cache.DateTime())
	}
	if cache.Dismissed {
		t.Error("Expected new cache to not be dismissed")
	}
}
