package goquery

import (
	"github.com/fwojciec/cpm"
	"github.com/fwojciec/cpm/pattern"
)

// Variant is one language rendition of a layout generation. Combined
// variants use a single template with a type slot; split variants use an
// input and an output template.
type Variant struct {
	cpm.LayoutInfo

	Combined *pattern.Template
	Input    *pattern.Template
	Output   *pattern.Template
}

// Layout is one historical markup generation of a judge's problem page.
// Variants are alternatives: a later variant is tried only when the earlier
// ones paired no case.
type Layout struct {
	Site       cpm.Site
	Generation string
	Pairing    cpm.Pairing
	Variants   []Variant
}

// Name returns the layout identifier, e.g. "atcoder/current".
func (l Layout) Name() string {
	return string(l.Site) + "/" + l.Generation
}

func combined(site cpm.Site, lang cpm.Language, gen string, tpl *pattern.Template) Variant {
	return Variant{
		LayoutInfo: cpm.LayoutInfo{Site: site, Language: lang, Generation: gen, Kind: cpm.SampleBlockCombined},
		Combined:   tpl,
	}
}

func split(site cpm.Site, lang cpm.Language, gen string, input, output *pattern.Template) Variant {
	return Variant{
		LayoutInfo: cpm.LayoutInfo{Site: site, Language: lang, Generation: gen, Kind: cpm.SampleBlockSplit},
		Input:      input,
		Output:     output,
	}
}

// AtCoder sample block templates, newest generation first.
var (
	atcoderCurrentEN = pattern.MustCompile(`
		<div class="part">
		<section>
		<h3>Sample {{type}} {{id}}</h3><pre>
		{{value}}
		</pre>
		</section>
		</div>`)
	atcoderCurrentJAInput = pattern.MustCompile(`
		<div class="part">
		<section>
		<h3>入力例 {{id}}</h3><pre>
		{{value}}
		</pre>
		</section>
		</div>`)
	atcoderCurrentJAOutput = pattern.MustCompile(`
		<div class="part">
		<section>
		<h3>出力例 {{id}}</h3><pre>
		{{value}}
		</pre>
		</section>
		</div>`)

	atcoderHeadingOutsideENInput  = pattern.MustCompile(`<div class="part"><h3>Sample Input {{id}}</h3><section><pre>{{value}}</pre></section></div>`)
	atcoderHeadingOutsideENOutput = pattern.MustCompile(`<div class="part"><h3>Sample Output {{id}}</h3><section><pre>{{value}}</pre></section></div>`)
	atcoderHeadingOutsideJAInput  = pattern.MustCompile(`<div class="part"><h3>入力例{{id}}</h3><section><pre>{{value}}</pre></section></div>`)
	atcoderHeadingOutsideJAOutput = pattern.MustCompile(`<div class="part"><h3>出力例{{id}}</h3><section><pre>{{value}}</pre></section></div>`)

	atcoderFlatJAInput = pattern.MustCompile(`
		<div class="part">
		<section>
		<h3>入力例{{id}}</h3>
		<pre>{{value}}</pre>
		</section>
		</div>`)
	atcoderFlatJAOutput = pattern.MustCompile(`
		<h3>出力例{{id}}</h3>
		<pre>{{value}}</pre>`)
)

// AtCoderLayouts lists the AtCoder problem page layouts, newest first.
var AtCoderLayouts = []Layout{
	{
		Site:       cpm.SiteAtCoder,
		Generation: "current",
		Pairing:    cpm.PairKeyed,
		Variants: []Variant{
			combined(cpm.SiteAtCoder, cpm.LanguageEnglish, "current", atcoderCurrentEN),
			split(cpm.SiteAtCoder, cpm.LanguageJapanese, "current", atcoderCurrentJAInput, atcoderCurrentJAOutput),
		},
	},
	{
		Site:       cpm.SiteAtCoder,
		Generation: "legacy-heading-outside",
		Pairing:    cpm.PairPositional,
		Variants: []Variant{
			split(cpm.SiteAtCoder, cpm.LanguageEnglish, "legacy-heading-outside", atcoderHeadingOutsideENInput, atcoderHeadingOutsideENOutput),
			split(cpm.SiteAtCoder, cpm.LanguageJapanese, "legacy-heading-outside", atcoderHeadingOutsideJAInput, atcoderHeadingOutsideJAOutput),
		},
	},
	{
		Site:       cpm.SiteAtCoder,
		Generation: "legacy-flat",
		Pairing:    cpm.PairPositional,
		Variants: []Variant{
			split(cpm.SiteAtCoder, cpm.LanguageJapanese, "legacy-flat", atcoderFlatJAInput, atcoderFlatJAOutput),
		},
	},
}

// Codeforces sample block templates.
var (
	codeforcesENInput  = pattern.MustCompile(`<div class="input"><div class="title">Input</div><pre>{{value}}</pre></div>`)
	codeforcesENOutput = pattern.MustCompile(`<div class="output"><div class="title">Output</div><pre>{{value}}</pre></div>`)
	codeforcesRUInput  = pattern.MustCompile(`<div class="input"><div class="title">Входные данные</div><pre>{{value}}</pre></div>`)
	codeforcesRUOutput = pattern.MustCompile(`<div class="output"><div class="title">Выходные данные</div><pre>{{value}}</pre></div>`)
)

// CodeforcesLayouts lists the Codeforces problem page layouts. Codeforces
// samples carry no ids, so blocks are paired by position.
var CodeforcesLayouts = []Layout{
	{
		Site:       cpm.SiteCodeforces,
		Generation: "current",
		Pairing:    cpm.PairPositional,
		Variants: []Variant{
			split(cpm.SiteCodeforces, cpm.LanguageEnglish, "current", codeforcesENInput, codeforcesENOutput),
			split(cpm.SiteCodeforces, cpm.LanguageRussian, "current", codeforcesRUInput, codeforcesRUOutput),
		},
	},
}
