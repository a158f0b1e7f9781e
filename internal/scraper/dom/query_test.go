package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFirstMatch(t *testing.T) {
	doc, err := Parse(`
		<div class="filter-block"><a href="/a">A</a></div>
		<div class="seasons-list"><a href="/b">B</a><a href="/c">C</a></div>
	`)
	require.NoError(t, err)

	strategies := []Strategy{
		{Name: "results anchors", Selector: `a[href*="/results/"]`},
		{Name: "seasons container", Selector: `div[class*="seasons"] a`},
		{Name: "filter container", Selector: `div[class*="filter"] a`},
	}

	sel, name, ok := FirstMatch(doc, strategies)
	require.True(t, ok)
	// First strategy has no matches, second wins; third is never merged in.
	require.Equal(t, "seasons container", name)
	require.Equal(t, 2, sel.Length())

	_, _, ok = FirstMatch(doc, []Strategy{{Name: "none", Selector: "table"}})
	require.False(t, ok)
}

func TestAnchors(t *testing.T) {
	doc, err := Parse(`
		<a href="/one">  2023/2024  </a>
		<a href="/two">2022/2023
			NFL</a>
		<a>no href</a>
	`)
	require.NoError(t, err)

	anchors := Anchors(doc.Find("a"))
	require.Len(t, anchors, 3)
	require.Equal(t, Anchor{Text: "2023/2024", Href: "/one"}, anchors[0])
	require.Equal(t, Anchor{Text: "2022/2023 NFL", Href: "/two"}, anchors[1])
	require.Equal(t, "", anchors[2].Href)
}

func TestLabeledGroup(t *testing.T) {
	doc, err := Parse(`
		<div class="odds-table">
			<div class="row">
				<p>bet365</p>
				<p class="height-content">1.85</p>
				<p class="height-content">2.02</p>
			</div>
			<div class="row">
				<p>Average</p>
				<p class="height-content">1.91</p>
				<p class="height-content">1.95</p>
			</div>
		</div>
	`)
	require.NoError(t, err)

	values, err := LabeledGroup(doc, "Average", "p.height-content")
	require.NoError(t, err)
	require.Equal(t, []string{"1.91", "1.95"}, values)
}

func TestLabeledGroupMissing(t *testing.T) {
	doc, err := Parse(`<div><p>Highest</p><p class="height-content">2.10</p></div>`)
	require.NoError(t, err)

	_, err = LabeledGroup(doc, "Average", "p.height-content")
	require.ErrorIs(t, err, ErrLabelNotFound)
}
