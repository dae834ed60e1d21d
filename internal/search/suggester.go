package search

import (
	"context"
	"errors"
	"sync"

	"storefront/internal/domain/model"
)

// この問い合わせより新しい問い合わせが同じキーで始まった
var ErrSuperseded = errors.New("superseded by newer query")

// 検索語の取得先（clientパッケージが実装）
type ProductSource interface {
	ListProducts(ctx context.Context, search string) ([]model.Product, error)
}

// 検索サジェスト。キー（セッション）ごとに進行中の問い合わせを1つだけ持ち、
// 新しい入力が来たら前の問い合わせをcontextで打ち切る。
// 追い越された応答は捨てる（latest wins）。マージはしない。
type Suggester struct {
	source   ProductSource
	minChars int

	mu     sync.Mutex
	active map[string]*attempt
}

type attempt struct {
	seq    uint64
	cancel context.CancelFunc
}

func NewSuggester(source ProductSource) *Suggester {
	return &Suggester{
		source: source,
		// 2文字以上で問い合わせる
		minChars: 2,
		active:   map[string]*attempt{},
	}
}

// termのサジェストを引く。同じkeyの古い問い合わせはキャンセルされる。
func (s *Suggester) Query(ctx context.Context, key string, term string) ([]model.Product, error) {
	if len([]rune(term)) < s.minChars {
		return []model.Product{}, nil
	}

	qctx, seq := s.begin(ctx, key)

	products, err := s.source.ListProducts(qctx, term)

	// 応答が返る頃に追い越されていたら結果は適用しない
	if !s.finish(key, seq) {
		return nil, ErrSuperseded
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, ErrSuperseded
		}
		return nil, err
	}
	return products, nil
}

// 新しい試行を開始し、同一キーの進行中の試行を打ち切る
func (s *Suggester) begin(ctx context.Context, key string) (context.Context, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var seq uint64
	if prev, ok := s.active[key]; ok {
		prev.cancel()
		seq = prev.seq + 1
	}

	qctx, cancel := context.WithCancel(ctx)
	s.active[key] = &attempt{seq: seq, cancel: cancel}
	return qctx, seq
}

// 自分がまだ最新ならエントリを片付けてtrue
func (s *Suggester) finish(key string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.active[key]
	if !ok || cur.seq != seq {
		return false
	}

	cur.cancel()
	delete(s.active, key)
	return true
}
