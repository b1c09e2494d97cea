package content

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fieldnation/devportal/config"
	"github.com/fieldnation/devportal/content/icon"
	"github.com/fieldnation/devportal/errors"
	"github.com/fieldnation/devportal/utils"
)

var extensions = map[string]struct{}{".md": {}, ".mdx": {}}

const indexName = "index"

// Loader exposes one content collection as pages and a page tree.
// It is read-only after NewLoader returned.
type Loader struct {
	baseURL    string
	collection *config.Collection
	dir        string
	icons      *icon.Registry
	log        *logrus.Entry

	bySlug map[string]*Page
	pages  []*Page
	tree   *Node
}

// NewLoader reads all markdown documents below dir. Unreadable files and
// invalid frontmatter abort the load.
func NewLoader(ctx context.Context, col *config.Collection, dir string, icons *icon.Registry, log *logrus.Entry) (*Loader, error) {
	if icons == nil {
		icons = icon.NewDefaultRegistry()
	}

	l := &Loader{
		baseURL:    utils.JoinURL(col.BaseURL),
		collection: col,
		dir:        dir,
		icons:      icons,
		log:        log.WithField("collection", col.Name),
		bySlug:     make(map[string]*Page),
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		if col.Optional && os.IsNotExist(err) {
			l.log.WithContext(ctx).Warnf("content directory not found: %s", dir)
			l.tree = &Node{Name: col.Label, Type: NodeFolder, URL: l.baseURL}
			return l, nil
		}
		if err == nil {
			err = os.ErrInvalid
		}
		return nil, errors.Content.Label(col.Name).Messagef("content directory %s", dir).With(err)
	}

	root, err := l.loadFolder(ctx, "", nil)
	if err != nil {
		return nil, err
	}
	root.Name = col.Label
	root.URL = l.baseURL
	l.tree = root

	l.log.WithContext(ctx).Debugf("loaded %d pages", len(l.pages))
	return l, nil
}

func (l *Loader) Name() string {
	return l.collection.Name
}

func (l *Loader) Collection() *config.Collection {
	return l.collection
}

func (l *Loader) BaseURL() string {
	return l.baseURL
}

// Dir is the content directory the pages were loaded from.
func (l *Loader) Dir() string {
	return l.dir
}

// Page looks up the page with the exact slugs. A miss is not an error.
func (l *Loader) Page(slugs []string) (*Page, bool) {
	p, exist := l.bySlug[slugKey(slugs)]
	return p, exist
}

// PageByURL looks up a page by its url path.
func (l *Loader) PageByURL(urlPath string) (*Page, bool) {
	urlPath = utils.JoinURL(urlPath)
	if l.baseURL != "/" {
		if urlPath != l.baseURL && !strings.HasPrefix(urlPath, l.baseURL+"/") {
			return nil, false
		}
		urlPath = strings.TrimPrefix(urlPath, l.baseURL)
	}
	return l.Page(utils.SplitURL(urlPath))
}

// Pages returns all pages in file system order. Callers sort explicitly.
func (l *Loader) Pages() []*Page {
	pages := make([]*Page, len(l.pages))
	copy(pages, l.pages)
	return pages
}

// Params enumerates the slugs of all pages.
func (l *Loader) Params() [][]string {
	params := make([][]string, 0, len(l.pages))
	for _, p := range l.pages {
		slugs := make([]string, len(p.Slugs))
		copy(slugs, p.Slugs)
		params = append(params, slugs)
	}
	return params
}

func (l *Loader) Tree() *Node {
	return l.tree
}

// Siblings returns the other pages of the folder containing the given page.
func (l *Loader) Siblings(slugs []string) []*Node {
	p, exist := l.Page(slugs)
	if !exist {
		return nil
	}

	parent := l.tree.parentOf(p.URL)
	if parent == nil {
		return nil
	}

	var peers []*Node
	for _, child := range parent.Children {
		if child.Type == NodePage && child.URL != p.URL {
			peers = append(peers, child)
		}
	}
	return peers
}

// NameMap maps the page urls to their display name in the page tree.
func (l *Loader) NameMap() map[string]string {
	names := make(map[string]string)
	l.tree.Walk(func(n *Node) {
		switch {
		case n.Type == NodeFolder && n.Index != nil && n != l.tree:
			// folder name wins over the index page title
			names[n.Index.URL] = n.Name
		case n.Type == NodePage && n.URL != "":
			if _, exist := names[n.URL]; !exist {
				names[n.URL] = n.Name
			}
		}
	})
	return names
}

func (l *Loader) loadFolder(ctx context.Context, relDir string, slugs []string) (*Node, error) {
	absDir := filepath.Join(l.dir, filepath.FromSlash(relDir))
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, errors.Content.Label(l.collection.Name).With(err)
	}

	meta, err := readMeta(filepath.Join(absDir, metaFilename))
	if err != nil {
		return nil, errors.Content.Label(path.Join(relDir, metaFilename)).Message("invalid meta file").With(err)
	}

	folder := &Node{Type: NodeFolder}
	if len(slugs) > 0 {
		folder.Name = humanize(slugs[len(slugs)-1])
	}

	var (
		items     = make(map[string]*Node)
		pageNames []string
		dirNames  []string
	)

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") {
			continue
		}

		if entry.IsDir() {
			child, childErr := l.loadFolder(ctx, path.Join(relDir, name), append(append([]string{}, slugs...), name))
			if childErr != nil {
				return nil, childErr
			}
			items[name] = child
			dirNames = append(dirNames, name)
			continue
		}

		ext := filepath.Ext(name)
		if _, ok := extensions[ext]; !ok {
			continue
		}

		stem := strings.TrimSuffix(name, ext)
		pageSlugs := append([]string{}, slugs...)
		if stem != indexName {
			pageSlugs = append(pageSlugs, stem)
		}

		p, pageErr := l.loadPage(ctx, path.Join(relDir, name), pageSlugs)
		if pageErr != nil {
			return nil, pageErr
		}

		if stem == indexName {
			folder.Index = newPageNode(p)
			continue
		}
		items[stem] = newPageNode(p)
		pageNames = append(pageNames, stem)
	}

	if folder.Index != nil {
		folder.Name = folder.Index.Name
		folder.Icon = folder.Index.Icon
		folder.URL = folder.Index.URL
	}

	if meta != nil {
		if meta.Title != "" {
			folder.Name = meta.Title
		}
		if meta.Icon != "" {
			folder.Icon = l.icons.Resolve(meta.Icon).Value
		}
		folder.DefaultOpen = meta.DefaultOpen
		folder.Root = meta.Root
	}

	sort.Strings(pageNames)
	sort.Strings(dirNames)
	defaultOrder := append(pageNames, dirNames...)

	if meta == nil || len(meta.Pages) == 0 {
		for _, name := range defaultOrder {
			folder.Children = append(folder.Children, items[name])
		}
		return folder, nil
	}

	listed := make(map[string]bool)
	for _, item := range meta.Pages {
		listed[item] = true
	}

	for _, item := range meta.Pages {
		if label, ok := separatorLabel(item); ok {
			folder.Children = append(folder.Children, &Node{Name: label, Type: NodeSeparator})
			continue
		}

		if item == restItems {
			for _, name := range defaultOrder {
				if !listed[name] {
					folder.Children = append(folder.Children, items[name])
				}
			}
			continue
		}

		node, exist := items[item]
		if !exist {
			l.log.WithContext(ctx).Warnf("%s: unknown page tree item: %q", path.Join(relDir, metaFilename), item)
			continue
		}
		folder.Children = append(folder.Children, node)
	}

	return folder, nil
}

func (l *Loader) loadPage(ctx context.Context, relPath string, slugs []string) (*Page, error) {
	absPath := filepath.Join(l.dir, filepath.FromSlash(relPath))
	src, err := os.ReadFile(absPath)
	if err != nil {
		return nil, errors.Content.Label(relPath).With(err)
	}

	fm, body, err := parseFrontmatter(src)
	if err != nil {
		return nil, errors.Content.Label(relPath).Message("invalid frontmatter").With(err)
	}
	if fm.Title == "" {
		return nil, errors.Content.Label(relPath).Message("missing title in frontmatter")
	}

	lastModified := fm.LastModified.Time
	if lastModified.IsZero() {
		info, statErr := os.Stat(absPath)
		if statErr != nil {
			return nil, errors.Content.Label(relPath).With(statErr)
		}
		lastModified = info.ModTime()
	}

	pageIcon := l.icons.Resolve(fm.Icon)
	if pageIcon.Kind == icon.Unknown {
		l.log.WithContext(ctx).Debugf("%s: unknown icon: %q", relPath, fm.Icon)
	}

	processed := processMarkdown(string(body))

	p := NewPage(Page{
		Collection:   l.collection.Name,
		Description:  fm.Description,
		Full:         fm.Full,
		Icon:         pageIcon,
		Index:        fm.Index,
		LastModified: lastModified,
		Path:         relPath,
		Slugs:        slugs,
		Title:        fm.Title,
		TOC:          tableOfContents([]byte(processed)),
		URL:          utils.JoinURL(append([]string{l.baseURL}, slugs...)...),
	}, map[TextKind]string{
		TextRaw:       string(src),
		TextProcessed: processed,
	})

	key := slugKey(slugs)
	if other, exist := l.bySlug[key]; exist {
		return nil, errors.Content.Label(relPath).Messagef("duplicate page url %s, already defined by %s", p.URL, other.Path)
	}
	l.bySlug[key] = p
	l.pages = append(l.pages, p)
	return p, nil
}

func slugKey(slugs []string) string {
	return strings.Join(slugs, "/")
}
