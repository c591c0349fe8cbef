package unsounded

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const base = "https://www.casualvillain.com/Unsounded"

func TestImageURL(t *testing.T) {
	assert.Equal(t, base+"/comic/ch01/pageart/ch01_01.jpg", imageURL(base, 1, 0, ""))
	assert.Equal(t, base+"/comic/ch14/pageart/ch14_120.jpg", imageURL(base, 14, 119, ""))
	assert.Equal(t, base+"/comic/ch10/pageart/ch10_155-156.jpg", imageURL(base, 10, 154, "-156"))
}

func TestArchivePages_Regular(t *testing.T) {
	pages := archivePages(base, 4, 12)
	require.Len(t, pages, 12)
	for i, p := range pages {
		assert.Equal(t, i, p.Index)
		assert.Equal(t, imageURL(base, 4, i, ""), p.ImageURL)
	}
	assert.Equal(t, "ch04_12", pages[11].URL)
}

func TestArchivePages_Chapter7(t *testing.T) {
	pages := archivePages(base, 7, 31)
	require.Len(t, pages, 28+9+2+1)

	expected := []string{"ch07_29", "ch07_29b", "ch07_29c", "ch07_29d", "ch07_29e", "ch07_29f", "ch07_29g", "ch07_29h", "ch07_29i"}
	for i, key := range expected {
		p := pages[28+i]
		assert.Equal(t, key, p.URL)
		assert.Equal(t, base+"/comic/ch07/pageart/"+key+".jpg", p.ImageURL)
	}

	assert.Equal(t, "ch07_30a", pages[37].URL)
	assert.Equal(t, base+"/comic/ch07/pageart/ch07_30b.jpg", pages[38].ImageURL)
	assert.Equal(t, "ch07_31", pages[39].URL)

	for i, p := range pages {
		assert.Equal(t, i, p.Index)
	}
}

func TestArchivePages_Chapter10Spread(t *testing.T) {
	pages := archivePages(base, 10, 157)
	require.Len(t, pages, 154+3+2+1)

	spread := pages[154:159]
	assert.Equal(t, "ch10_155156a", spread[0].URL)
	assert.Equal(t, base+"/comic/ch10/images/outside_left_d.jpg", spread[0].ImageURL)
	assert.Equal(t, "ch10_155156b", spread[1].URL)
	assert.Equal(t, base+"/comic/ch10/images/comic_leftd_bg.jpg", spread[1].ImageURL)
	assert.Equal(t, "ch10_155156c", spread[2].URL)
	assert.Equal(t, base+"/comic/ch10/pageart/ch10_155-156.jpg", spread[2].ImageURL)
	assert.Equal(t, "ch10_155156d", spread[3].URL)
	assert.Equal(t, base+"/comic/ch10/images/comic_rightd_bg.jpg", spread[3].ImageURL)
	assert.Equal(t, "ch10_155156e", spread[4].URL)
	assert.Equal(t, base+"/comic/ch10/images/outside_right_d.jpg", spread[4].ImageURL)

	assert.Equal(t, 158, spread[4].Index)
	assert.Equal(t, "ch10_157", pages[159].URL)
}

func TestArchivePages_Chapter13(t *testing.T) {
	pages := archivePages(base, 13, 86)
	require.Len(t, pages, 90)

	for i, suffix := range []string{"a", "aa", "b", "c", "d"} {
		assert.Equal(t, "ch13_86"+suffix, pages[85+i].URL)
		assert.Equal(t, base+"/comic/ch13/pageart/ch13_86"+suffix+".jpg", pages[85+i].ImageURL)
	}
}

func TestArchivePages_ExceptionsOnlyApplyToTheirChapter(t *testing.T) {
	pages := archivePages(base, 8, 30)
	require.Len(t, pages, 30)
	assert.Equal(t, "ch08_29", pages[28].URL)
}

func TestLatestPage(t *testing.T) {
	p := latestPage(base, 17, 5)
	assert.Equal(t, 0, p.Index)
	assert.Equal(t, "ch17_05", p.URL)
	assert.Equal(t, base+"/comic/ch17/pageart/ch17_05.jpg", p.ImageURL)
}
