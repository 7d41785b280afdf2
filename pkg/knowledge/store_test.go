package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []Item {
	return []Item{
		{
			Id:       "kb-001",
			Category: "休暇",
			Question: "有給休暇はいつから取得できますか？",
			Answer:   "入社6ヶ月後に10日付与されます。",
			Keywords: []string{"有給", "休暇"},
		},
		{
			Id:       "kb-002",
			Category: "勤務",
			Question: "リモートワークは可能ですか？",
			Answer:   "週3日まで可能です。",
			Keywords: []string{"リモート", "在宅"},
		},
		{
			Id:       "kb-003",
			Category: "採用",
			Question: "選考プロセスを教えてください",
			Answer:   "書類選考、面接2回、オファー面談です。",
			Keywords: []string{"選考", "面接"},
		},
	}
}

func TestNewStoreContextOrderAndShape(t *testing.T) {
	store, err := NewStore(testItems())
	require.NoError(t, err)

	ctx := store.Context()
	assert.True(t, strings.HasPrefix(ctx, "Q: 有給休暇はいつから取得できますか？\nA: 入社6ヶ月後に10日付与されます。"))
	assert.Equal(t, 2, strings.Count(ctx, "\n\n---\n\n"))
	// Insertion order is preserved in the serialized context.
	assert.Less(t, strings.Index(ctx, "リモートワーク"), strings.Index(ctx, "選考プロセス"))
}

func TestNewStoreValidation(t *testing.T) {
	t.Run("duplicate id", func(t *testing.T) {
		items := testItems()
		items[1].Id = items[0].Id
		_, err := NewStore(items)
		assert.ErrorContains(t, err, "duplicate id")
	})

	t.Run("missing id", func(t *testing.T) {
		items := testItems()
		items[0].Id = ""
		_, err := NewStore(items)
		assert.ErrorContains(t, err, "missing id")
	})

	t.Run("blank question", func(t *testing.T) {
		items := testItems()
		items[2].Question = "   "
		_, err := NewStore(items)
		assert.ErrorContains(t, err, "missing question")
	})

	t.Run("blank answer", func(t *testing.T) {
		items := testItems()
		items[2].Answer = ""
		_, err := NewStore(items)
		assert.ErrorContains(t, err, "missing answer")
	})
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "kb.yaml")
	content := `items:
  - id: kb-001
    category: 休暇
    question: 有給休暇はいつから取得できますか？
    answer: 入社6ヶ月後に10日付与されます。
    keywords: [有給, 休暇]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, "kb-001", store.Items()[0].Id)
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("empty items", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "kb.yaml")
		require.NoError(t, os.WriteFile(path, []byte("items: []\n"), 0o644))
		_, err := Load(path)
		assert.ErrorContains(t, err, "no items")
	})
}

func TestTop(t *testing.T) {
	store, err := NewStore(testItems())
	require.NoError(t, err)

	assert.Len(t, store.Top(2), 2)
	assert.Len(t, store.Top(10), 3)
	assert.Empty(t, store.Top(0))
	assert.Empty(t, store.Top(-1))
	assert.Equal(t, "kb-001", store.Top(1)[0].Id)
}

func TestMatch(t *testing.T) {
	store, err := NewStore(testItems())
	require.NoError(t, err)

	t.Run("keyword hits win", func(t *testing.T) {
		item, score := store.Match("有給休暇の付与日数について")
		require.NotNil(t, item)
		assert.Equal(t, "kb-001", item.Id)
		assert.GreaterOrEqual(t, score, 4)
	})

	t.Run("verbatim question adds weight", func(t *testing.T) {
		item, score := store.Match("リモートワークは可能ですか？")
		require.NotNil(t, item)
		assert.Equal(t, "kb-002", item.Id)
		assert.GreaterOrEqual(t, score, 5)
	})

	t.Run("no overlap", func(t *testing.T) {
		item, score := store.Match("ランチの補助はありますか")
		assert.Nil(t, item)
		assert.Zero(t, score)
	})

	t.Run("blank query", func(t *testing.T) {
		item, score := store.Match("   ")
		assert.Nil(t, item)
		assert.Zero(t, score)
	})
}
