package listing

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Card is the flattened form of a property used by grid, list and carousel
// views.
type Card struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Location    string   `json:"location"`
	PriceLabel  string   `json:"price_label"`
	PricePeriod string   `json:"price_period,omitempty"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	AreaLabel   string   `json:"area_label,omitempty"`
	Badges      []string `json:"badges,omitempty"`
}

// PriceOnRequest labels properties without a valid price.
const PriceOnRequest = "Price on request"

func NewCard(p Property) Card {
	c := Card{
		ID:         p.ID,
		Title:      p.Title,
		Location:   p.Location,
		PriceLabel: p.Price.Format(DefaultCurrency),
		Bedrooms:   p.Bedrooms,
		Bathrooms:  p.Bathrooms,
	}
	if c.PriceLabel == "" {
		c.PriceLabel = PriceOnRequest
	}
	if p.ListingType == ListingRent {
		c.PricePeriod = "/month"
	}
	if img, ok := p.PrimaryImage(); ok {
		c.Thumbnail = img.ImageURL
	}
	if p.AreaSqm != nil && *p.AreaSqm > 0 {
		c.AreaLabel = strconv.FormatFloat(*p.AreaSqm, 'f', -1, 64) + " m²"
	}
	if p.Featured {
		c.Badges = append(c.Badges, "Featured")
	}
	switch p.ListingType {
	case ListingRent:
		c.Badges = append(c.Badges, "For Rent")
	case ListingBuy:
		c.Badges = append(c.Badges, "For Sale")
	}
	if p.Availability != "" && p.Availability != Available {
		c.Badges = append(c.Badges, titleCase(string(p.Availability)))
	}
	return c
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// List maps every property to a card, keeping order.
func List(props []Property) []Card {
	out := make([]Card, 0, len(props))
	for _, p := range props {
		out = append(out, NewCard(p))
	}
	return out
}

// Grid lays cards out in rows of the given width. The last row may be short.
func Grid(props []Property, columns int) [][]Card {
	if columns <= 0 {
		columns = 3
	}
	cards := List(props)
	rows := make([][]Card, 0, (len(cards)+columns-1)/columns)
	for start := 0; start < len(cards); start += columns {
		rows = append(rows, cards[start:min(start+columns, len(cards))])
	}
	return rows
}

// MapMarker places a property on the map view.
type MapMarker struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	PriceLabel string  `json:"price_label"`
}

// MapMarkers returns markers for the properties that have coordinates.
func MapMarkers(props []Property) []MapMarker {
	out := []MapMarker{}
	for _, p := range props {
		if !p.HasCoordinates() {
			continue
		}
		out = append(out, MapMarker{
			ID:         p.ID,
			Title:      p.Title,
			Latitude:   *p.Latitude,
			Longitude:  *p.Longitude,
			PriceLabel: NewCard(p).PriceLabel,
		})
	}
	return out
}

// Carousel walks a list in a loop.
type Carousel[T any] struct {
	items []T
	pos   int
}

func NewCarousel[T any](items []T) *Carousel[T] {
	return &Carousel[T]{items: items}
}

func (c *Carousel[T]) Len() int { return len(c.items) }

// Index returns the position of the current item.
func (c *Carousel[T]) Index() int { return c.pos }

// Current returns the item at the current position; ok is false when empty.
func (c *Carousel[T]) Current() (item T, ok bool) {
	if len(c.items) == 0 {
		return item, false
	}
	return c.items[c.pos], true
}

// Next moves forward, wrapping to the first item after the last.
func (c *Carousel[T]) Next() {
	if n := len(c.items); n > 0 {
		c.pos = (c.pos + 1) % n
	}
}

// Prev moves backward, wrapping to the last item before the first.
func (c *Carousel[T]) Prev() {
	if n := len(c.items); n > 0 {
		c.pos = (c.pos - 1 + n) % n
	}
}

// Window returns up to n items starting at the current position, wrapping
// around the end. It never repeats an item.
func (c *Carousel[T]) Window(n int) []T {
	total := len(c.items)
	n = min(n, total)
	out := make([]T, 0, max(n, 0))
	for i := 0; i < n; i++ {
		out = append(out, c.items[(c.pos+i)%total])
	}
	return out
}

// Slot identifies one rotating area of the trending board.
type Slot int

const (
	SlotMain Slot = iota
	SlotSmall1
	SlotSmall2
	SlotSmall3
)

var trendingBounds = [...][2]int{{0, 4}, {4, 7}, {7, 10}, {10, 13}}

const (
	MainRotation  = 60 * time.Second
	SmallRotation = 30 * time.Second
)

// TrendingBoard splits a trending list into a main set of four and three small
// sets of three. Each set shows one item at a time and rotates on a timer.
// It is safe for concurrent use.
type TrendingBoard struct {
	MainInterval  time.Duration
	SmallInterval time.Duration

	mu   sync.Mutex
	sets [4][]Property
	idx  [4]int
}

func NewTrendingBoard(props []Property) *TrendingBoard {
	b := &TrendingBoard{MainInterval: MainRotation, SmallInterval: SmallRotation}
	for slot, bounds := range trendingBounds {
		lo, hi := min(bounds[0], len(props)), min(bounds[1], len(props))
		b.sets[slot] = props[lo:hi]
	}
	return b
}

// Set returns the properties assigned to a slot.
func (b *TrendingBoard) Set(s Slot) []Property {
	if !s.valid() {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sets[s]
}

// Current returns the property a slot shows now.
func (b *TrendingBoard) Current(s Slot) (Property, bool) {
	if !s.valid() {
		return Property{}, false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	set := b.sets[s]
	if len(set) == 0 {
		return Property{}, false
	}
	return set[b.idx[s]], true
}

// Advance rotates a slot to its next property, wrapping modulo the set size.
// Empty slots stay put.
func (b *TrendingBoard) Advance(s Slot) {
	if !s.valid() {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if n := len(b.sets[s]); n > 0 {
		b.idx[s] = (b.idx[s] + 1) % n
	}
}

// Run rotates the main slot every MainInterval and the small slots every
// SmallInterval until ctx is done. onTick, when set, is called after each
// rotated slot. Run returns ctx.Err().
func (b *TrendingBoard) Run(ctx context.Context, onTick func(Slot)) error {
	mainEvery, smallEvery := b.MainInterval, b.SmallInterval
	if mainEvery <= 0 {
		mainEvery = MainRotation
	}
	if smallEvery <= 0 {
		smallEvery = SmallRotation
	}
	mainTick := time.NewTicker(mainEvery)
	defer mainTick.Stop()
	smallTick := time.NewTicker(smallEvery)
	defer smallTick.Stop()

	rotate := func(slots ...Slot) {
		for _, s := range slots {
			b.Advance(s)
			if onTick != nil {
				onTick(s)
			}
		}
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-mainTick.C:
			rotate(SlotMain)
		case <-smallTick.C:
			rotate(SlotSmall1, SlotSmall2, SlotSmall3)
		}
	}
}

func (s Slot) valid() bool { return s >= SlotMain && s <= SlotSmall3 }
