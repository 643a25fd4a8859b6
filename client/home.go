package client

import (
	"context"

	"golang.org/x/sync/errgroup"

	"househunters/listing"
)

// HomeFeed is the data behind the landing page.
type HomeFeed struct {
	Featured      []listing.Property
	Trending      []listing.Property
	Neighborhoods []Neighborhood
}

// HomeFeed fetches the featured list, the trending list and the
// neighborhoods concurrently. The first failure cancels the others.
func (c *Client) HomeFeed(ctx context.Context, limit int) (*HomeFeed, error) {
	var feed HomeFeed
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		feed.Featured, err = c.Properties.Featured(gctx, limit)
		return err
	})
	g.Go(func() error {
		var err error
		feed.Trending, err = c.Properties.Trending(gctx, limit)
		return err
	})
	g.Go(func() error {
		var err error
		feed.Neighborhoods, err = c.Properties.Neighborhoods(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &feed, nil
}

// TrendingBoard fetches enough trending properties to fill every slot of a
// listing.TrendingBoard.
func (c *Client) TrendingBoard(ctx context.Context) (*listing.TrendingBoard, error) {
	props, err := c.Properties.Trending(ctx, 13)
	if err != nil {
		return nil, err
	}
	return listing.NewTrendingBoard(props), nil
}
