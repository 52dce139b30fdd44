package xmltree

import "github.com/beevik/etree"

type etreeDoc struct {
	root *etree.Element
	doc  *etree.Document
}
