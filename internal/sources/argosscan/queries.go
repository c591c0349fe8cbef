// Lantern: Content-source extensions and a host harness for manga readers.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package argosscan

import "Lantern/pkg/engine/network"

const pageSize = 10

const projectsQuery = `query getProjects($filters: FiltersExpression!, $orders: OrdersExpression!, $pagination: PaginationInput) {
  getProjects(orders: $orders, filters: $filters, pagination: $pagination) {
    projects {
      id
      name
      cover
      type
      updateAt
    }
    count
    currentPage
    totalPages
  }
}`

const projectQuery = `query project($id: Int!) {
  project(id: $id) {
    id
    name
    cover
    description
    authors
    type
    tags {
      name
    }
    chapters {
      id
      title
      number
      createAt
    }
  }
}`

const chaptersQuery = `query getChapters($filters: FiltersExpression!) {
  getChapters(filters: $filters) {
    chapters {
      id
      images
      project {
        id
      }
    }
  }
}`

func projectsPayload(page int, filters, orders map[string]interface{}) network.GraphQLQuery {
	return network.GraphQLQuery{
		OperationName: "getProjects",
		Query:         projectsQuery,
		Variables: map[string]interface{}{
			"filters":    filters,
			"orders":     orders,
			"pagination": map[string]interface{}{"limit": pageSize, "page": page},
		},
	}
}

func orderBy(field string) map[string]interface{} {
	return map[string]interface{}{
		"orders": []map[string]interface{}{{"field": field, "or": "DESC"}},
	}
}

func allProjects() map[string]interface{} {
	return map[string]interface{}{"childExpressions": []interface{}{}, "filters": []interface{}{}, "operator": "AND"}
}

// popularPayload lists projects by view count
func popularPayload(page int) network.GraphQLQuery {
	return projectsPayload(page, allProjects(), orderBy("Project.views"))
}

// latestPayload lists projects by last update
func latestPayload(page int) network.GraphQLQuery {
	return projectsPayload(page, allProjects(), orderBy("Project.updateAt"))
}

// searchPayload lists projects whose name contains query
func searchPayload(page int, query string) network.GraphQLQuery {
	filters := map[string]interface{}{
		"childExpressions": []interface{}{},
		"filters": []map[string]interface{}{
			{"field": "Project.name", "op": "LIKE", "values": []string{query}},
		},
		"operator": "AND",
	}
	return projectsPayload(page, filters, orderBy("Project.views"))
}

func projectPayload(id int) network.GraphQLQuery {
	return network.GraphQLQuery{
		OperationName: "project",
		Query:         projectQuery,
		Variables:     map[string]interface{}{"id": id},
	}
}

func chaptersPayload(chapterID string) network.GraphQLQuery {
	return network.GraphQLQuery{
		OperationName: "getChapters",
		Query:         chaptersQuery,
		Variables: map[string]interface{}{
			"filters": map[string]interface{}{"ids": []string{chapterID}},
		},
	}
}
